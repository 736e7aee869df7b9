package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativehub/backend/internal/identity"
	"github.com/creativehub/backend/internal/models"
	"github.com/creativehub/backend/internal/store"
)

type recordingSyncer struct {
	calls []string
	err   error
}

func (r *recordingSyncer) UpdateDisplay(ctx context.Context, subject, name, avatar string) error {
	r.calls = append(r.calls, subject+"/"+name)
	return r.err
}

func signIn(t *testing.T, s *store.Store, subject, email, name string) *models.User {
	t.Helper()
	user, profile := s.ResolveSession(&identity.Principal{Subject: subject, Email: email, Name: name})
	require.NotNil(t, user)
	require.NotNil(t, profile)
	return user
}

func validDraft() store.PortfolioDraft {
	return store.PortfolioDraft{
		Title:       "My Work",
		Description: "A piece of my best design work",
		Category:    "Branding",
		CoverImage:  "img://1",
		IsPublic:    true,
	}
}

func TestMutationsFailBeforeSessionResolution(t *testing.T) {
	s := store.New(nil)

	_, err := s.CreatePortfolio(1, validDraft())
	assert.ErrorIs(t, err, store.ErrNotReady)

	_, err = s.CreateJob(1, store.JobDraft{})
	assert.ErrorIs(t, err, store.ErrNotReady)

	err = s.UpdateProfile(context.Background(), 1, models.Profile{UserID: 1})
	assert.ErrorIs(t, err, store.ErrNotReady)
}

func TestResolveSessionCreatesDefaultProfile(t *testing.T) {
	s := store.New(nil)

	user, profile := s.ResolveSession(&identity.Principal{
		Subject: "acct-1",
		Email:   "new@x.com",
		Name:    "Thiri Win",
	})
	require.NotNil(t, user)
	require.NotNil(t, profile)

	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, "new@x.com", profile.Email)
	assert.Equal(t, "Creative Professional", profile.Title)
	assert.Empty(t, profile.Skills)
	assert.Contains(t, profile.Bio, "Thiri Win")
	assert.NotEmpty(t, profile.MemberSince)
}

func TestResolveSessionStableID(t *testing.T) {
	s := store.New(nil)

	p := &identity.Principal{Subject: "acct-stable", Email: "stable@x.com", Name: "Stable"}
	first, _ := s.ResolveSession(p)
	second, _ := s.ResolveSession(p)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
}

func TestResolveSessionSignOut(t *testing.T) {
	s := store.New(nil)
	a := signIn(t, s, "acct-1", "a@x.com", "A")

	user, profile := s.ResolveSession(nil)
	assert.Nil(t, user)
	assert.Nil(t, profile)
	assert.True(t, s.Ready())

	// A sign-out event names nobody; other users' resolved sessions survive.
	_, err := s.CreatePortfolio(a.ID, validDraft())
	assert.NoError(t, err)
}

func TestResolveSessionUpdatesNameAndAvatar(t *testing.T) {
	s := store.New(nil)
	user := signIn(t, s, "acct-1", "a@x.com", "Old Name")

	updated, profile := s.ResolveSession(&identity.Principal{
		Subject: "acct-1",
		Email:   "a@x.com",
		Name:    "New Name",
		Avatar:  "img://avatar",
	})
	require.NotNil(t, updated)
	assert.Equal(t, user.ID, updated.ID)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "img://avatar", updated.Avatar)
	assert.Equal(t, "New Name", profile.Name)
}

func TestCreatePortfolio(t *testing.T) {
	s := store.New(nil)
	user := signIn(t, s, "acct-1", "new@x.com", "New User")

	created, err := s.CreatePortfolio(user.ID, validDraft())
	require.NoError(t, err)

	assert.Equal(t, 0, created.Likes)
	assert.Equal(t, 0, created.Views)
	assert.Equal(t, user.ID, created.UserID)

	// Newest first, single entry.
	mine := s.Portfolios(user.ID)
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)

	second, err := s.CreatePortfolio(user.ID, validDraft())
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, second.ID)

	mine = s.Portfolios(user.ID)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID, "new portfolio should be prepended")
}

func TestCreatePortfolioValidation(t *testing.T) {
	s := store.New(nil)
	user := signIn(t, s, "acct-1", "a@x.com", "A")

	cases := []struct {
		name  string
		edit  func(*store.PortfolioDraft)
		field string
	}{
		{"short title", func(d *store.PortfolioDraft) { d.Title = "ab" }, "title"},
		{"short description", func(d *store.PortfolioDraft) { d.Description = "too short" }, "description"},
		{"empty category", func(d *store.PortfolioDraft) { d.Category = "" }, "category"},
		{"unknown category", func(d *store.PortfolioDraft) { d.Category = "Cooking" }, "category"},
		{"missing cover", func(d *store.PortfolioDraft) { d.CoverImage = "" }, "cover_image"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.edit(&draft)
			_, err := s.CreatePortfolio(user.ID, draft)
			var ve *store.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}

	assert.Empty(t, s.Portfolios(user.ID), "failed creates must not append")
}

func TestCreatePortfolioRequiresResolvedUser(t *testing.T) {
	s := store.New(nil)
	user := signIn(t, s, "acct-1", "a@x.com", "A")

	// An id no session has ever resolved cannot own anything.
	_, err := s.CreatePortfolio(user.ID+1, validDraft())
	assert.ErrorIs(t, err, store.ErrNotAuthenticated)
}

func TestUpdatePortfolioKeepsIDAndOwner(t *testing.T) {
	s := store.New(nil)
	user := signIn(t, s, "acct-1", "a@x.com", "A")
	created, err := s.CreatePortfolio(user.ID, validDraft())
	require.NoError(t, err)

	title := "Updated Title"
	private := false
	updated, err := s.UpdatePortfolio(created.ID, user.ID, store.PortfolioPatch{
		Title:    &title,
		IsPublic: &private,
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.UserID, updated.UserID)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.False(t, updated.IsPublic)
	assert.Equal(t, created.Description, updated.Description)

	_, err = s.UpdatePortfolio(9999, user.ID, store.PortfolioPatch{Title: &title})
	assert.ErrorIs(t, err, store.ErrNotFound)

	bad := "ab"
	_, err = s.UpdatePortfolio(created.ID, user.ID, store.PortfolioPatch{Title: &bad})
	assert.True(t, store.IsValidation(err))
	got, err := s.PortfolioByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", got.Title, "failed update must not commit")
}

func TestUpdatePortfolioRequiresOwner(t *testing.T) {
	s := store.New(nil)
	owner := signIn(t, s, "acct-1", "a@x.com", "A")
	other := signIn(t, s, "acct-2", "b@x.com", "B")
	created, err := s.CreatePortfolio(owner.ID, validDraft())
	require.NoError(t, err)

	title := "Hijacked"
	_, err = s.UpdatePortfolio(created.ID, other.ID, store.PortfolioPatch{Title: &title})
	assert.ErrorIs(t, err, store.ErrForbidden)

	got, err := s.PortfolioByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
}

func TestDeletePortfolio(t *testing.T) {
	s := store.New(nil)
	user := signIn(t, s, "acct-1", "a@x.com", "A")
	created, err := s.CreatePortfolio(user.ID, validDraft())
	require.NoError(t, err)

	err = s.DeletePortfolio(created.ID, user.ID+7)
	assert.ErrorIs(t, err, store.ErrForbidden)
	assert.Len(t, s.Portfolios(user.ID), 1, "failed delete must leave the collection unchanged")

	require.NoError(t, s.DeletePortfolio(created.ID, user.ID))
	assert.Empty(t, s.Portfolios(user.ID))

	err = s.DeletePortfolio(created.ID, user.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetLikeIdempotent(t *testing.T) {
	s := store.New(nil)
	user := signIn(t, s, "acct-1", "a@x.com", "A")
	created, err := s.CreatePortfolio(user.ID, validDraft())
	require.NoError(t, err)

	p, err := s.SetLike(user.ID, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Likes)

	p, err = s.SetLike(user.ID, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Likes, "second like must be a no-op")
	assert.True(t, s.Liked(user.ID, created.ID))

	p, err = s.SetLike(user.ID, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Likes)

	p, err = s.SetLike(user.ID, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Likes, "unlike below zero must not happen")
}

func TestRecordView(t *testing.T) {
	s := store.New(nil)
	user := signIn(t, s, "acct-1", "a@x.com", "A")
	created, err := s.CreatePortfolio(user.ID, validDraft())
	require.NoError(t, err)

	s.RecordView(created.ID)
	s.RecordView(created.ID)
	got, err := s.PortfolioByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)

	s.RecordView(9999) // no-op
}

func TestCreateJobValidation(t *testing.T) {
	s := store.New(nil)
	user := signIn(t, s, "acct-1", "a@x.com", "A")

	draft := store.JobDraft{
		Title:       "Logo Designer for a Cafe",
		Description: "We need a complete logo and signage package for a new cafe.",
		Category:    "Branding",
		Skills:      []string{"Illustrator", "Branding"},
		Budget:      500,
		Location:    "Yangon",
	}

	job, err := s.CreateJob(user.ID, draft)
	require.NoError(t, err)
	assert.Equal(t, user.ID, job.ClientID)

	noSkills := draft
	noSkills.Skills = nil
	_, err = s.CreateJob(user.ID, noSkills)
	var ve *store.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "skills", ve.Field)
	assert.Len(t, s.Jobs(), 1, "rejected job must not append")

	dupSkills := draft
	dupSkills.Skills = []string{"Figma", "Figma"}
	_, err = s.CreateJob(user.ID, dupSkills)
	assert.True(t, store.IsValidation(err))

	// Padding must not disguise a duplicate.
	paddedDup := draft
	paddedDup.Skills = []string{"Figma", " Figma "}
	_, err = s.CreateJob(user.ID, paddedDup)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "skills", ve.Field)

	freeJob := draft
	freeJob.Budget = 0
	_, err = s.CreateJob(user.ID, freeJob)
	assert.True(t, store.IsValidation(err))
}

func TestUpdateProfileSyncsIdentityOnce(t *testing.T) {
	syncer := &recordingSyncer{}
	s := store.New(syncer)
	user := signIn(t, s, "acct-1", "a@x.com", "Old Name")

	profile, err := s.ProfileFor(user.ID)
	require.NoError(t, err)

	edited := *profile
	edited.Name = "Renamed User"
	edited.Location = "Mandalay"
	require.NoError(t, s.UpdateProfile(context.Background(), user.ID, edited))

	require.Len(t, syncer.calls, 1, "exactly one upstream update per divergent rename")
	assert.Equal(t, "acct-1/Renamed User", syncer.calls[0])

	got, err := s.ProfileFor(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", got.Name)
	assert.Equal(t, "Mandalay", got.Location)
	assert.Equal(t, "Renamed User", s.UserByID(user.ID).Name)

	// Unchanged name and avatar: no further upstream traffic.
	require.NoError(t, s.UpdateProfile(context.Background(), user.ID, *got))
	assert.Len(t, syncer.calls, 1)
}

func TestUpdateProfileSurvivesUpstreamFailure(t *testing.T) {
	syncer := &recordingSyncer{err: errors.New("provider unavailable")}
	s := store.New(syncer)
	user := signIn(t, s, "acct-1", "a@x.com", "Old Name")

	profile, err := s.ProfileFor(user.ID)
	require.NoError(t, err)
	edited := *profile
	edited.Name = "Renamed User"

	require.NoError(t, s.UpdateProfile(context.Background(), user.ID, edited))
	got, err := s.ProfileFor(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", got.Name, "local profile wins regardless of upstream outcome")
}

func TestUpdateProfileOwnership(t *testing.T) {
	s := store.New(nil)
	user := signIn(t, s, "acct-1", "a@x.com", "A")
	other := signIn(t, s, "acct-2", "b@x.com", "B")

	err := s.UpdateProfile(context.Background(), user.ID, models.Profile{UserID: other.ID, Name: "X"})
	assert.ErrorIs(t, err, store.ErrForbidden)

	got, err := s.ProfileFor(other.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
}

func TestSkillMutations(t *testing.T) {
	s := store.New(nil)
	user := signIn(t, s, "acct-1", "a@x.com", "A")

	p, err := s.AddSkill(user.ID, "  Figma ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Figma"}, p.Skills)

	p, err = s.AddSkill(user.ID, "Figma")
	require.NoError(t, err)
	assert.Equal(t, []string{"Figma"}, p.Skills, "duplicate skill is a no-op")

	p, err = s.AddSkill(user.ID, "   ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Figma"}, p.Skills, "blank skill is a no-op")

	_, err = s.AddSkill(user.ID, "Prototyping")
	require.NoError(t, err)
	p, err = s.RemoveSkill(user.ID, "Figma")
	require.NoError(t, err)
	assert.Equal(t, []string{"Prototyping"}, p.Skills)

	_, err = s.AddSkill(user.ID+99, "Figma")
	assert.ErrorIs(t, err, store.ErrNotAuthenticated)
}

func TestInterleavedSessionsKeepUsersIsolated(t *testing.T) {
	s := store.New(nil)

	// Two users authenticated at once; B's resolution lands between A's and
	// A's mutations, the way concurrent requests interleave.
	a := signIn(t, s, "acct-a", "a@x.com", "A")
	b := signIn(t, s, "acct-b", "b@x.com", "B")
	require.NotEqual(t, a.ID, b.ID)

	created, err := s.CreatePortfolio(a.ID, validDraft())
	require.NoError(t, err, "A's valid session must not be displaced by B's")
	assert.Equal(t, a.ID, created.UserID)

	pa, err := s.AddSkill(a.ID, "Figma")
	require.NoError(t, err)
	assert.Equal(t, a.ID, pa.UserID, "A's skill edit must land on A's profile")
	assert.Equal(t, []string{"Figma"}, pa.Skills)

	pb, err := s.ProfileFor(b.ID)
	require.NoError(t, err)
	assert.Empty(t, pb.Skills, "B's profile must be untouched by A's edit")

	// Likes from distinct viewers each count once.
	_, err = s.SetLike(a.ID, created.ID, true)
	require.NoError(t, err)
	got, err := s.SetLike(b.ID, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Likes)
	assert.True(t, s.Liked(a.ID, created.ID))
	assert.True(t, s.Liked(b.ID, created.ID))

	// Profile edits stay owner-scoped under interleaving too.
	profA, err := s.ProfileFor(a.ID)
	require.NoError(t, err)
	edited := *profA
	edited.Name = "A Prime"
	require.NoError(t, s.UpdateProfile(context.Background(), a.ID, edited))
	gotB, err := s.ProfileFor(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", gotB.Name)
}

func TestShowcaseFiltersPublicOnly(t *testing.T) {
	s := store.New(nil)
	users, profiles, portfolios, jobs := store.DemoData()
	s.Seed(users, profiles, portfolios, jobs)
	s.ResolveSession(nil)

	shown := s.Showcase("", "")
	require.Len(t, shown, 1)
	assert.True(t, shown[0].IsPublic)

	assert.Len(t, s.Showcase("branding", ""), 1)
	assert.Empty(t, s.Showcase("fitness", ""), "private portfolios stay hidden even when matching")
	assert.Len(t, s.Showcase("", "Branding"), 1)
	assert.Empty(t, s.Showcase("", "Photography"))
}

func TestSeededIDsDoNotCollide(t *testing.T) {
	s := store.New(nil)
	users, profiles, portfolios, jobs := store.DemoData()
	s.Seed(users, profiles, portfolios, jobs)
	user := signIn(t, s, "acct-1", "new@x.com", "New User")

	created, err := s.CreatePortfolio(user.ID, validDraft())
	require.NoError(t, err)
	for _, existing := range portfolios {
		assert.NotEqual(t, existing.ID, created.ID)
	}
}

func TestSignupAndFirstPortfolioScenario(t *testing.T) {
	s := store.New(nil)
	user, _ := s.ResolveSession(&identity.Principal{Subject: "acct-new", Email: "new@x.com", Name: "New User"})
	require.NotNil(t, user)

	created, err := s.CreatePortfolio(user.ID, store.PortfolioDraft{
		Title:       "My Work",
		Description: "A piece of my best design work",
		Category:    "Branding",
		CoverImage:  "img://1",
		IsPublic:    true,
	})
	require.NoError(t, err)

	mine := s.Portfolios(user.ID)
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)
	assert.Equal(t, 0, mine[0].Likes)
	assert.Equal(t, 0, mine[0].Views)

	all := s.Showcase("", "")
	require.NotEmpty(t, all)
	assert.Equal(t, created.ID, all[0].ID, "new portfolio appears first")
}
