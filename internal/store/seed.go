package store

import "github.com/creativehub/backend/internal/models"

// DemoData returns the sample collections shown before anyone signs up. The
// demo designer account exists in the identity store too (see cmd/api).
func DemoData() ([]models.User, []models.Profile, []models.Portfolio, []models.Job) {
	users := []models.User{
		{
			ID:    1,
			Name:  "Guest User",
			Email: "guest@example.com",
		},
		{
			ID:     2,
			Name:   "Aung Myat",
			Email:  "aung.myat@gmail.com",
			Avatar: "https://images.creativehub.dev/avatars/aung-myat.png",
		},
	}

	profiles := []models.Profile{
		{
			UserID: 1,
			Name:   "Guest User",
			Title:  "Creative Professional",
			Email:  "guest@example.com",
			Bio:    "Welcome to Creative Hub! Create an account to showcase your creative work and connect with other professionals.",
			Skills: []string{},
		},
		{
			UserID:      2,
			Name:        "Aung Myat",
			Title:       "Senior UI/UX Designer",
			Email:       "aung.myat@gmail.com",
			Phone:       "+95 9 123 456 789",
			Location:    "Yangon, Myanmar",
			Bio:         "Passionate UI/UX designer with over 8 years of experience in creating intuitive and beautiful digital experiences. Specializing in mobile apps and complex web applications.",
			Skills:      []string{"UI Design", "UX Research", "Figma", "Prototyping", "Design Systems"},
			MemberSince: "June 2021",
			Avatar:      "https://images.creativehub.dev/avatars/aung-myat.png",
		},
	}

	portfolios := []models.Portfolio{
		{
			ID:          1,
			UserID:      2,
			Title:       "Brand Identity for Tech Startup",
			Description: "Complete branding package including logo, color palette, and brand guidelines for a cutting-edge technology startup focused on AI solutions.",
			CoverImage:  "https://images.creativehub.dev/portfolios/brand-identity-cover.png",
			Images: []string{
				"https://images.creativehub.dev/portfolios/brand-identity-1.png",
				"https://images.creativehub.dev/portfolios/brand-identity-2.png",
				"https://images.creativehub.dev/portfolios/brand-identity-3.png",
				"https://images.creativehub.dev/portfolios/brand-identity-4.png",
			},
			Category: "Branding",
			IsPublic: true,
			Featured: true,
			Likes:    24,
			Views:    156,
		},
		{
			ID:          2,
			UserID:      2,
			Title:       "Mobile App UI Design",
			Description: "Comprehensive user interface design for a fitness tracking mobile application with focus on user experience and intuitive navigation.",
			CoverImage:  "https://images.creativehub.dev/portfolios/mobile-app-ui-cover.png",
			Images: []string{
				"https://images.creativehub.dev/portfolios/mobile-app-ui-1.png",
				"https://images.creativehub.dev/portfolios/mobile-app-ui-2.png",
				"https://images.creativehub.dev/portfolios/mobile-app-ui-3.png",
			},
			Category: "UI/UX Design",
			IsPublic: false,
			Likes:    18,
			Views:    203,
		},
	}

	return users, profiles, portfolios, nil
}
