// Package identity models the external authentication boundary. The domain
// store never talks to a concrete provider; it sees principals and session
// events through the Delegate interface so the provider can be swapped or
// faked in tests.
package identity

import "context"

// Principal is the authenticated identity record returned by the delegate.
// Subject is the provider's stable identifier for the account and does not
// change across logins.
type Principal struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Avatar  string `json:"avatar,omitempty"`
}

// ProviderClaim carries the identity asserted by a federated provider after
// its own verification step. The delegate trusts it the way the original
// system trusts a popup-flow result.
type ProviderClaim struct {
	Email  string
	Name   string
	Avatar string
}

// SessionHandler receives session-change events. A nil principal means the
// session ended.
type SessionHandler func(*Principal)

// Delegate is the authentication service the domain store consumes. All
// operations may fail with *AuthError; its message is surfaced verbatim to
// the end user.
type Delegate interface {
	// SignUp creates an account with a password and signs it in.
	SignUp(ctx context.Context, name, email, password string) (*Principal, error)
	// SignIn authenticates an existing password account.
	SignIn(ctx context.Context, email, password string) (*Principal, error)
	// SignInWithProvider signs in (creating the account if needed) via a
	// federated provider.
	SignInWithProvider(ctx context.Context, providerID string, claim ProviderClaim) (*Principal, error)
	// SignOut ends the current session and emits a nil session event.
	SignOut(ctx context.Context) error
	// UpdateDisplay pushes a new display name and avatar to the provider's
	// copy of the account. Best-effort: callers log failures and move on.
	UpdateDisplay(ctx context.Context, subject, name, avatar string) error
	// Subscribe registers a handler for session-change events. Handlers are
	// invoked synchronously in registration order.
	Subscribe(h SessionHandler)
}

// AuthError is a provider-defined failure. Message is shown to the user
// unchanged, matching the upstream provider's behavior.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// NewAuthError builds an AuthError with the given code and message.
func NewAuthError(code, message string) *AuthError {
	return &AuthError{Code: code, Message: message}
}
