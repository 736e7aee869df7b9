package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/creativehub/backend/internal/api"
	"github.com/creativehub/backend/internal/identity"
	"github.com/creativehub/backend/internal/middleware"
	"github.com/creativehub/backend/internal/router"
	"github.com/creativehub/backend/internal/store"
	"github.com/creativehub/backend/internal/testhelpers"
)

// testServer bundles an engine wired exactly like cmd/api, with the external
// boundaries replaced by fakes.
type testServer struct {
	engine    *gin.Engine
	identity  *testhelpers.FakeIdentity
	store     *store.Store
	suggester *testhelpers.FakeSuggester
	images    *testhelpers.FakeImageStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := testhelpers.NewFakeIdentity()
	st := store.New(fake)
	fake.Subscribe(func(p *identity.Principal) { st.ResolveSession(p) })
	st.Seed(store.DemoData())
	st.ResolveSession(nil)

	suggester := &testhelpers.FakeSuggester{}
	images := &testhelpers.FakeImageStore{}
	authn := middleware.Auth(fake, st)
	engine := router.Setup(router.Handlers{
		Auth:      api.NewAuthHandler(fake, st),
		Profile:   api.NewProfileHandler(st),
		Portfolio: api.NewPortfolioHandler(st),
		Job:       api.NewJobHandler(st),
		Suggest:   api.NewSuggestHandler(suggester),
		Image:     api.NewImageHandler(images),
	}, authn, nil)

	return &testServer{engine: engine, identity: fake, store: st, suggester: suggester, images: images}
}

// do performs a JSON request; token is optional.
func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

// signup registers a fresh account and returns its session token.
func (ts *testServer) signup(t *testing.T, name, email string) string {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/v1/auth/signup", "", api.SignupRequest{
		Name:     name,
		Email:    email,
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp api.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	out := make(map[string]json.RawMessage)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeInto(t *testing.T, raw json.RawMessage, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, dst))
}

// validPortfolio is a request body that passes every portfolio contract.
func validPortfolio() api.CreatePortfolioRequest {
	return api.CreatePortfolioRequest{
		Title:       "Brand Identity Pack",
		Description: "Complete brand identity for a local coffee roastery.",
		Category:    "Branding",
		CoverImage:  "https://images.creativehub.dev/covers/roastery.jpg",
		IsPublic:    true,
	}
}

// validStoreDraft mirrors validPortfolio for direct store calls.
func validStoreDraft() store.PortfolioDraft {
	return store.PortfolioDraft{
		Title:       "Brand Identity Pack",
		Description: "Complete brand identity for a local coffee roastery.",
		Category:    "Branding",
		CoverImage:  "https://images.creativehub.dev/covers/roastery.jpg",
		IsPublic:    true,
	}
}

func portfolioPath(id int) string {
	return fmt.Sprintf("/api/v1/portfolios/%d", id)
}

func freelancerPath(userID int) string {
	return fmt.Sprintf("/api/v1/freelancers/%d", userID)
}
