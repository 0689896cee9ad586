package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/docai/flow-studio/internal/domain/auth"
)

// ErrInvalidCredentials is the single error surfaced for any credential
// mismatch, regardless of which part of the triple was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials carries a submitted email/password pair together with the
// role tab the user selected at login. The check is keyed by role: valid
// user credentials submitted under the creator tab must fail.
type Credentials struct {
	Email    string
	Password string
	Role     domainauth.Role
}

// CredentialAuthenticator verifies a password login attempt and returns
// the identity on success. Implementations must return ErrInvalidCredentials
// (not a field-specific error) on any mismatch so handlers cannot leak
// whether the email or the password was wrong.
type CredentialAuthenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (domainauth.Identity, error)
}

// BeginInput carries inputs for initiating an OIDC auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
// Used in OIDC mode; the credentials mode bypasses it entirely.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleMapper maps provider groups to application roles.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}
