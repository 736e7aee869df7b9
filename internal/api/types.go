package api

import "github.com/creativehub/backend/internal/models"

// SignupRequest is the signup form payload.
type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the login form payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// FederatedLoginRequest carries the identity asserted by a federated
// provider flow.
type FederatedLoginRequest struct {
	Provider string `json:"provider" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// SessionResponse is returned by every successful auth operation.
type SessionResponse struct {
	Token   string          `json:"token"`
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
}

// CreatePortfolioRequest is the portfolio upload form payload.
type CreatePortfolioRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	CoverImage  string   `json:"cover_image"`
	Images      []string `json:"images"`
	IsPublic    bool     `json:"is_public"`
	Featured    bool     `json:"featured"`
}

// UpdatePortfolioRequest is a partial portfolio edit; absent fields keep
// their stored values.
type UpdatePortfolioRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	CoverImage  *string   `json:"cover_image"`
	Images      *[]string `json:"images"`
	IsPublic    *bool     `json:"is_public"`
	Featured    *bool     `json:"featured"`
}

// CreateJobRequest is the job posting form payload.
type CreateJobRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Skills      []string          `json:"skills"`
	Budget      float64           `json:"budget"`
	Location    string            `json:"location"`
	Notes       string            `json:"notes"`
	Deadline    *models.DateRange `json:"deadline"`
}

// UpdateProfileRequest is the profile edit form payload.
type UpdateProfileRequest struct {
	Name     string   `json:"name" binding:"required,min=2"`
	Title    string   `json:"title"`
	Phone    string   `json:"phone"`
	Location string   `json:"location"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
	Avatar   string   `json:"avatar"`
}

// AddSkillRequest adds one skill to the caller's profile.
type AddSkillRequest struct {
	Skill string `json:"skill" binding:"required"`
}

// SuggestCoverImagesRequest asks for cover-image suggestions.
type SuggestCoverImagesRequest struct {
	Description string `json:"description" binding:"required,min=20"`
}
