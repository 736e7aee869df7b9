// Package store is the single source of truth for the four entity
// collections (users, profiles, portfolios, jobs). Every mutation goes
// through the Store so derived fields (ids, counters) stay consistent.
//
// The server handles many signed-in users at once, so identity is
// request-scoped: each mutation takes the authenticated user id and is
// checked against the sessions the store has resolved, never against a
// process-wide "current user". Only the loading→ready gate is global.
//
// Collections are replaced wholesale on mutation rather than edited in place,
// so a snapshot handed to a reader never changes under it.
package store

import (
	"context"
	"hash/fnv"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/creativehub/backend/internal/identity"
	"github.com/creativehub/backend/internal/models"
)

// ProfileSyncer pushes display changes back to the identity provider's copy
// of the account. identity.Delegate satisfies it.
type ProfileSyncer interface {
	UpdateDisplay(ctx context.Context, subject, name, avatar string) error
}

// Store holds all domain state for the lifetime of the process.
type Store struct {
	mu     sync.RWMutex
	ready  bool
	syncer ProfileSyncer

	users      []models.User
	profiles   []models.Profile
	portfolios []models.Portfolio
	jobs       []models.Job

	// likes tracks per-viewer liked portfolio ids for this process only.
	likes map[int]map[int]bool

	// subjects maps a user id to the identity subject whose session resolved
	// it. A user id without an entry has never authenticated here.
	subjects map[int]string

	nextID int
}

// New creates an empty Store in the loading state. Mutations fail with
// ErrNotReady until the first call to ResolveSession.
func New(syncer ProfileSyncer) *Store {
	return &Store{
		syncer:   syncer,
		likes:    make(map[int]map[int]bool),
		subjects: make(map[int]string),
		nextID:   1,
	}
}

// Seed preloads demo collections. Intended for startup only, before any
// session resolution.
func (s *Store) Seed(users []models.User, profiles []models.Profile, portfolios []models.Portfolio, jobs []models.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append([]models.User(nil), users...)
	s.profiles = append([]models.Profile(nil), profiles...)
	s.portfolios = append([]models.Portfolio(nil), portfolios...)
	s.jobs = append([]models.Job(nil), jobs...)

	for _, u := range users {
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
	}
	for _, p := range portfolios {
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	for _, j := range jobs {
		if j.ID >= s.nextID {
			s.nextID = j.ID + 1
		}
	}
}

// ResolveSession reconciles an identity event into the local collections and
// records which subject the resolved user id belongs to. The first call,
// success or sign-out, moves the store from loading to ready; it never goes
// back. Resolving the same principal again is idempotent, so the auth
// middleware runs it on every authenticated request.
//
// A nil principal is a sign-out event. It carries no subject, so it cannot
// and does not revoke other users' resolved sessions; token expiry is the
// revocation mechanism.
func (s *Store) ResolveSession(p *identity.Principal) (*models.User, *models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true

	if p == nil {
		return nil, nil
	}

	if i := s.userIndexByEmail(p.Email); i >= 0 {
		user := s.users[i]
		changed := false
		if p.Name != "" && user.Name != p.Name {
			user.Name = p.Name
			changed = true
		}
		if p.Avatar != "" && user.Avatar != p.Avatar {
			user.Avatar = p.Avatar
			changed = true
		}
		if changed {
			users := append([]models.User(nil), s.users...)
			users[i] = user
			s.users = users

			if j := s.profileIndex(user.ID); j >= 0 {
				profile := s.profiles[j]
				profile.Name = user.Name
				if user.Avatar != "" {
					profile.Avatar = user.Avatar
				}
				profiles := append([]models.Profile(nil), s.profiles...)
				profiles[j] = profile
				s.profiles = profiles
			}
		}

		s.subjects[user.ID] = p.Subject
		u, pr := s.pairLocked(user.ID)
		return u, pr
	}

	// First sign-in for this principal: synthesize a stable numeric id and
	// create the user with a default profile.
	user := models.User{
		ID:     s.allocUserID(p.Subject),
		Name:   p.Name,
		Email:  p.Email,
		Avatar: p.Avatar,
	}
	if user.Name == "" {
		user.Name = "New User"
	}

	profile := models.Profile{
		UserID:      user.ID,
		Name:        user.Name,
		Title:       "Creative Professional",
		Email:       user.Email,
		Bio:         "Welcome to my creative hub! I'm " + user.Name + ".",
		Skills:      []string{},
		MemberSince: time.Now().Format("January 2006"),
		Avatar:      user.Avatar,
	}

	s.users = append(append([]models.User(nil), s.users...), user)
	s.profiles = append(append([]models.Profile(nil), s.profiles...), profile)
	s.subjects[user.ID] = p.Subject

	u, pr := s.pairLocked(user.ID)
	return u, pr
}

// authorizeLocked gates a mutation on the store being ready and on userID
// belonging to a resolved session. Caller holds the write lock.
func (s *Store) authorizeLocked(userID int) error {
	if !s.ready {
		return ErrNotReady
	}
	if _, ok := s.subjects[userID]; !ok {
		return ErrNotAuthenticated
	}
	return nil
}

// allocUserID derives a numeric id from the principal's stable subject so
// repeated logins for the same principal map to the same user. Collisions
// with an already-assigned id fall through to deterministic probing.
func (s *Store) allocUserID(subject string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	id := int(h.Sum32() & 0x7fffffff)
	if id == 0 {
		id = 1
	}
	for s.userIndexByID(id) >= 0 {
		id++
	}
	return id
}

// PortfolioDraft is the creation payload for a portfolio.
type PortfolioDraft struct {
	Title       string
	Description string
	CoverImage  string
	Images      []string
	Category    string
	IsPublic    bool
	Featured    bool
}

func validatePortfolio(title, description, category, coverImage string) error {
	if len(strings.TrimSpace(title)) < 3 {
		return invalid("title", "title must be at least 3 characters long")
	}
	if len(strings.TrimSpace(description)) < 10 {
		return invalid("description", "description must be at least 10 characters long")
	}
	if category == "" {
		return invalid("category", "please select a category")
	}
	if !models.ValidCategory(category) {
		return invalid("category", "unknown category")
	}
	if coverImage == "" {
		return invalid("cover_image", "please provide a cover image")
	}
	return nil
}

// CreatePortfolio validates the draft and prepends a new portfolio owned by
// ownerID, which must belong to a resolved session.
func (s *Store) CreatePortfolio(ownerID int, draft PortfolioDraft) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorizeLocked(ownerID); err != nil {
		return nil, err
	}
	if err := validatePortfolio(draft.Title, draft.Description, draft.Category, draft.CoverImage); err != nil {
		return nil, err
	}

	p := models.Portfolio{
		ID:          s.nextID,
		UserID:      ownerID,
		Title:       draft.Title,
		Description: draft.Description,
		CoverImage:  draft.CoverImage,
		Images:      append([]string(nil), draft.Images...),
		Category:    draft.Category,
		IsPublic:    draft.IsPublic,
		Featured:    draft.Featured,
	}
	s.nextID++

	// Most-recent-first ordering.
	s.portfolios = append([]models.Portfolio{p}, s.portfolios...)
	out := p
	return &out, nil
}

// PortfolioPatch carries optional replacement fields for a portfolio edit.
// Nil fields keep the stored value; id and owner can never change.
type PortfolioPatch struct {
	Title       *string
	Description *string
	CoverImage  *string
	Images      *[]string
	Category    *string
	IsPublic    *bool
	Featured    *bool
}

// UpdatePortfolio merges the patch into the stored portfolio, if requesterID
// owns it, and re-validates the result against the creation constraints.
func (s *Store) UpdatePortfolio(id, requesterID int, patch PortfolioPatch) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorizeLocked(requesterID); err != nil {
		return nil, err
	}

	i := s.portfolioIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	if s.portfolios[i].UserID != requesterID {
		return nil, ErrForbidden
	}

	merged := s.portfolios[i]
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.CoverImage != nil {
		merged.CoverImage = *patch.CoverImage
	}
	if patch.Images != nil {
		merged.Images = append([]string(nil), (*patch.Images)...)
	}
	if patch.Category != nil {
		merged.Category = *patch.Category
	}
	if patch.IsPublic != nil {
		merged.IsPublic = *patch.IsPublic
	}
	if patch.Featured != nil {
		merged.Featured = *patch.Featured
	}

	if err := validatePortfolio(merged.Title, merged.Description, merged.Category, merged.CoverImage); err != nil {
		return nil, err
	}

	portfolios := append([]models.Portfolio(nil), s.portfolios...)
	portfolios[i] = merged
	s.portfolios = portfolios

	out := merged
	return &out, nil
}

// DeletePortfolio removes the portfolio if requesterID owns it.
func (s *Store) DeletePortfolio(id, requesterID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorizeLocked(requesterID); err != nil {
		return err
	}

	i := s.portfolioIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	if s.portfolios[i].UserID != requesterID {
		return ErrForbidden
	}

	portfolios := make([]models.Portfolio, 0, len(s.portfolios)-1)
	portfolios = append(portfolios, s.portfolios[:i]...)
	portfolios = append(portfolios, s.portfolios[i+1:]...)
	s.portfolios = portfolios
	return nil
}

// SetLike records viewerID's like state for a portfolio. Likes are tracked
// per viewer, so repeating the same target state is a no-op and the counter
// moves by at most one per transition.
func (s *Store) SetLike(viewerID, id int, liked bool) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorizeLocked(viewerID); err != nil {
		return nil, err
	}

	i := s.portfolioIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	already := s.likes[viewerID][id]
	if already == liked {
		out := s.portfolios[i]
		return &out, nil
	}

	p := s.portfolios[i]
	if liked {
		p.Likes++
	} else if p.Likes > 0 {
		p.Likes--
	}

	if s.likes[viewerID] == nil {
		s.likes[viewerID] = make(map[int]bool)
	}
	s.likes[viewerID][id] = liked

	portfolios := append([]models.Portfolio(nil), s.portfolios...)
	portfolios[i] = p
	s.portfolios = portfolios

	out := p
	return &out, nil
}

// Liked reports whether viewerID has liked the portfolio this session.
func (s *Store) Liked(viewerID, id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.likes[viewerID][id]
}

// RecordView bumps the view counter for a portfolio. Unknown ids are ignored;
// a view of a vanished portfolio is not an error worth surfacing.
func (s *Store) RecordView(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.portfolioIndex(id)
	if i < 0 {
		return
	}
	p := s.portfolios[i]
	p.Views++

	portfolios := append([]models.Portfolio(nil), s.portfolios...)
	portfolios[i] = p
	s.portfolios = portfolios
}

// JobDraft is the creation payload for a job posting.
type JobDraft struct {
	Title       string
	Description string
	Category    string
	Skills      []string
	Budget      float64
	Location    string
	Notes       string
	Deadline    *models.DateRange
}

func validateJob(d JobDraft) error {
	if len(strings.TrimSpace(d.Title)) < 5 {
		return invalid("title", "title must be at least 5 characters long")
	}
	if len(strings.TrimSpace(d.Description)) < 20 {
		return invalid("description", "description must be at least 20 characters long")
	}
	if d.Category == "" {
		return invalid("category", "please select a category")
	}
	if len(d.Skills) == 0 {
		return invalid("skills", "please add at least one skill")
	}
	seen := make(map[string]bool, len(d.Skills))
	for _, sk := range d.Skills {
		sk = strings.TrimSpace(sk)
		if sk == "" {
			return invalid("skills", "skills cannot be empty")
		}
		if seen[sk] {
			return invalid("skills", "duplicate skill: "+sk)
		}
		seen[sk] = true
	}
	if d.Budget <= 0 {
		return invalid("budget", "budget must be greater than 0")
	}
	if len(strings.TrimSpace(d.Location)) < 3 {
		return invalid("location", "location is required")
	}
	return nil
}

// CreateJob validates the draft and prepends a new posting owned by clientID,
// which must be the logged-in user.
func (s *Store) CreateJob(clientID int, draft JobDraft) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorizeLocked(clientID); err != nil {
		return nil, err
	}
	if err := validateJob(draft); err != nil {
		return nil, err
	}

	j := models.Job{
		ID:          s.nextID,
		ClientID:    clientID,
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		Skills:      append([]string(nil), draft.Skills...),
		Budget:      draft.Budget,
		Location:    draft.Location,
		Notes:       draft.Notes,
		Deadline:    draft.Deadline,
	}
	s.nextID++

	s.jobs = append([]models.Job{j}, s.jobs...)
	out := j
	return &out, nil
}

// UpdateProfile replaces requesterID's stored profile and mirrors the name
// and avatar onto the user record. Only the owner may edit their profile. If
// the identity provider's copy of the display name or avatar differs, a
// single best-effort update is requested; failure there is logged, not
// surfaced.
func (s *Store) UpdateProfile(ctx context.Context, requesterID int, updated models.Profile) error {
	s.mu.Lock()

	if err := s.authorizeLocked(requesterID); err != nil {
		s.mu.Unlock()
		return err
	}
	if updated.UserID != requesterID {
		s.mu.Unlock()
		return ErrForbidden
	}

	i := s.profileIndex(updated.UserID)
	if i < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}

	// Email mirrors the user record; profile edits cannot move it.
	updated.Email = s.profiles[i].Email
	updated.Skills = append([]string(nil), updated.Skills...)

	profiles := append([]models.Profile(nil), s.profiles...)
	profiles[i] = updated
	s.profiles = profiles

	needSync := false
	if j := s.userIndexByID(updated.UserID); j >= 0 {
		user := s.users[j]
		needSync = user.Name != updated.Name || (updated.Avatar != "" && user.Avatar != updated.Avatar)
		user.Name = updated.Name
		if updated.Avatar != "" {
			user.Avatar = updated.Avatar
		}
		users := append([]models.User(nil), s.users...)
		users[j] = user
		s.users = users
	}

	subject := s.subjects[requesterID]
	syncer := s.syncer
	s.mu.Unlock()

	if needSync && syncer != nil {
		if err := syncer.UpdateDisplay(ctx, subject, updated.Name, updated.Avatar); err != nil {
			log.Printf("[Store] identity display sync failed for %s: %v", updated.Email, err)
		}
	}
	return nil
}

// AddSkill appends a skill to userID's profile. Empty or duplicate skills
// (exact match) are ignored.
func (s *Store) AddSkill(userID int, skill string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorizeLocked(userID); err != nil {
		return nil, err
	}

	i := s.profileIndex(userID)
	if i < 0 {
		return nil, ErrNotFound
	}

	skill = strings.TrimSpace(skill)
	profile := s.profiles[i]
	if skill == "" {
		out := profile
		return &out, nil
	}
	for _, existing := range profile.Skills {
		if existing == skill {
			out := profile
			return &out, nil
		}
	}

	profile.Skills = append(append([]string(nil), profile.Skills...), skill)
	profiles := append([]models.Profile(nil), s.profiles...)
	profiles[i] = profile
	s.profiles = profiles

	out := profile
	return &out, nil
}

// RemoveSkill drops every exact match of skill from userID's profile.
func (s *Store) RemoveSkill(userID int, skill string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorizeLocked(userID); err != nil {
		return nil, err
	}

	i := s.profileIndex(userID)
	if i < 0 {
		return nil, ErrNotFound
	}

	profile := s.profiles[i]
	kept := make([]string, 0, len(profile.Skills))
	for _, existing := range profile.Skills {
		if existing != skill {
			kept = append(kept, existing)
		}
	}
	profile.Skills = kept

	profiles := append([]models.Profile(nil), s.profiles...)
	profiles[i] = profile
	s.profiles = profiles

	out := profile
	return &out, nil
}

func (s *Store) userIndexByEmail(email string) int {
	for i := range s.users {
		if s.users[i].Email == email {
			return i
		}
	}
	return -1
}

func (s *Store) userIndexByID(id int) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) profileIndex(userID int) int {
	for i := range s.profiles {
		if s.profiles[i].UserID == userID {
			return i
		}
	}
	return -1
}

func (s *Store) portfolioIndex(id int) int {
	for i := range s.portfolios {
		if s.portfolios[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) jobIndex(id int) int {
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) pairLocked(userID int) (*models.User, *models.Profile) {
	var u *models.User
	var p *models.Profile
	if i := s.userIndexByID(userID); i >= 0 {
		copyU := s.users[i]
		u = &copyU
	}
	if i := s.profileIndex(userID); i >= 0 {
		copyP := s.profiles[i]
		p = &copyP
	}
	return u, p
}
