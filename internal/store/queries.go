package store

import (
	"strings"

	"github.com/creativehub/backend/internal/models"
)

// Ready reports whether the first session-resolution event has arrived.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// UserByID returns the user record, or nil if unknown.
func (s *Store) UserByID(userID int) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, _ := s.pairLocked(userID)
	return u
}

// PortfolioByID returns a single portfolio.
func (s *Store) PortfolioByID(id int) (*models.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.portfolioIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	out := s.portfolios[i]
	return &out, nil
}

// Portfolios returns every portfolio owned by ownerID, newest first.
func (s *Store) Portfolios(ownerID int) []models.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Portfolio
	for _, p := range s.portfolios {
		if p.UserID == ownerID {
			out = append(out, p)
		}
	}
	return out
}

// Showcase returns public portfolios, newest first, optionally filtered by a
// case-insensitive title/description substring and by category.
func (s *Store) Showcase(query, category string) []models.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Portfolio, 0)
	for _, p := range s.portfolios {
		if !p.IsPublic {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Jobs returns all postings, newest first.
func (s *Store) Jobs() []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobs
}

// JobByID returns a single posting.
func (s *Store) JobByID(id int) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.jobIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	out := s.jobs[i]
	return &out, nil
}

// ProfileFor returns the profile owned by userID.
func (s *Store) ProfileFor(userID int) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.profileIndex(userID)
	if i < 0 {
		return nil, ErrNotFound
	}
	out := s.profiles[i]
	return &out, nil
}

// FreelancerProfiles returns profiles of users with at least one public
// portfolio, for the freelancer directory.
func (s *Store) FreelancerProfiles() []models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visible := make(map[int]bool)
	for _, p := range s.portfolios {
		if p.IsPublic {
			visible[p.UserID] = true
		}
	}

	out := make([]models.Profile, 0)
	for _, pr := range s.profiles {
		if visible[pr.UserID] {
			out = append(out, pr)
		}
	}
	return out
}
