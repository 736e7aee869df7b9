// Package testhelpers provides in-memory fakes for the external boundaries.
package testhelpers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/creativehub/backend/internal/identity"
)

type fakeAccount struct {
	principal identity.Principal
	password  string
}

// FakeIdentity is an in-memory identity provider implementing the delegate
// contract, token minting and token validation.
type FakeIdentity struct {
	mu       sync.Mutex
	accounts map[string]*fakeAccount // by email
	handlers []identity.SessionHandler
	nextID   int

	// UpdateDisplayCalls records best-effort display syncs.
	UpdateDisplayCalls []string
	// UpdateDisplayErr, when set, fails every display sync.
	UpdateDisplayErr error
}

// NewFakeIdentity creates an empty fake provider.
func NewFakeIdentity() *FakeIdentity {
	return &FakeIdentity{accounts: make(map[string]*fakeAccount)}
}

func (f *FakeIdentity) Subscribe(h identity.SessionHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers = append(f.handlers, h)
}

func (f *FakeIdentity) emit(p *identity.Principal) {
	for _, h := range f.handlers {
		h(p)
	}
}

func (f *FakeIdentity) SignUp(ctx context.Context, name, email, password string) (*identity.Principal, error) {
	f.mu.Lock()
	if _, exists := f.accounts[email]; exists {
		f.mu.Unlock()
		return nil, identity.NewAuthError("auth/email-already-in-use", "an account with this email already exists")
	}

	f.nextID++
	account := &fakeAccount{
		principal: identity.Principal{
			Subject: fmt.Sprintf("fake-acct-%d", f.nextID),
			Email:   email,
			Name:    name,
		},
		password: password,
	}
	f.accounts[email] = account
	p := account.principal
	f.mu.Unlock()

	f.emit(&p)
	return &p, nil
}

func (f *FakeIdentity) SignIn(ctx context.Context, email, password string) (*identity.Principal, error) {
	f.mu.Lock()
	account, exists := f.accounts[email]
	if !exists || account.password != password {
		f.mu.Unlock()
		return nil, identity.NewAuthError("auth/invalid-credential", "invalid email or password")
	}
	p := account.principal
	f.mu.Unlock()

	f.emit(&p)
	return &p, nil
}

func (f *FakeIdentity) SignInWithProvider(ctx context.Context, providerID string, claim identity.ProviderClaim) (*identity.Principal, error) {
	f.mu.Lock()
	account, exists := f.accounts[claim.Email]
	if !exists {
		f.nextID++
		account = &fakeAccount{
			principal: identity.Principal{
				Subject: fmt.Sprintf("fake-acct-%d", f.nextID),
				Email:   claim.Email,
				Name:    claim.Name,
				Avatar:  claim.Avatar,
			},
		}
		f.accounts[claim.Email] = account
	}
	p := account.principal
	f.mu.Unlock()

	f.emit(&p)
	return &p, nil
}

func (f *FakeIdentity) SignOut(ctx context.Context) error {
	f.emit(nil)
	return nil
}

func (f *FakeIdentity) UpdateDisplay(ctx context.Context, subject, name, avatar string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.UpdateDisplayCalls = append(f.UpdateDisplayCalls, subject+"/"+name)
	if f.UpdateDisplayErr != nil {
		return f.UpdateDisplayErr
	}
	for _, account := range f.accounts {
		if account.principal.Subject == subject {
			account.principal.Name = name
			if avatar != "" {
				account.principal.Avatar = avatar
			}
		}
	}
	return nil
}

// IssueToken mints an unsigned opaque token the fake can validate itself.
func (f *FakeIdentity) IssueToken(p *identity.Principal) (string, error) {
	return "fake-token:" + p.Subject, nil
}

// ValidateToken resolves tokens minted by IssueToken.
func (f *FakeIdentity) ValidateToken(token string) (*identity.Principal, error) {
	subject, ok := strings.CutPrefix(token, "fake-token:")
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, account := range f.accounts {
		if account.principal.Subject == subject {
			p := account.principal
			return &p, nil
		}
	}
	return nil, fmt.Errorf("unknown subject")
}

// FakeImageStore records uploads and returns deterministic URLs.
type FakeImageStore struct {
	Uploads []string // content types, in order
	Err     error
}

func (f *FakeImageStore) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	f.Uploads = append(f.Uploads, contentType)
	return fmt.Sprintf("https://images.test/upload-%d", len(f.Uploads)), nil
}

// FakeSuggester returns canned cover-image suggestions.
type FakeSuggester struct {
	URLs []string
	Err  error
}

func (f *FakeSuggester) SuggestCoverImages(ctx context.Context, description string) ([]string, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.URLs, nil
}
