package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domainauth "github.com/docai/flow-studio/internal/domain/auth"
	apperrors "github.com/docai/flow-studio/internal/errors"
	"github.com/docai/flow-studio/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Authenticator ports.CredentialAuthenticator
	Provider      ports.AuthProvider
	Sessions      ports.SessionStore
	Roles         ports.RoleMapper
}

// AuthService orchestrates authentication flows by coordinating the
// credential directory (password mode) or provider (OIDC mode), role
// mapping, and session persistence.
type AuthService struct {
	authenticator ports.CredentialAuthenticator
	provider      ports.AuthProvider
	sessions      ports.SessionStore
	roles         ports.RoleMapper
}

var errSessionExpired = errors.New("session expired")

// ErrInvalidCredentials mirrors the port sentinel so handlers depend on
// the service package only.
var ErrInvalidCredentials = ports.ErrInvalidCredentials

const minPasswordLen = 8

var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		authenticator: opts.Authenticator,
		provider:      opts.Provider,
		sessions:      opts.Sessions,
		roles:         opts.Roles,
	}
}

// PasswordLoginInput groups parameters for a password login attempt.
// Role is the raw tab value from the login form.
type PasswordLoginInput struct {
	Email    string
	Password string
	Role     string
}

// PasswordLoginResult contains the established session and where the
// client should land next.
type PasswordLoginResult struct {
	Session      domainauth.Session
	RedirectPath string
}

// PasswordLogin validates the submitted form, checks the credentials
// against the directory keyed by the selected role, and establishes a
// session on success. Structural validation failures are reported
// per-field and never reach the credential comparison; a credential
// mismatch is always the single ErrInvalidCredentials with no field
// attribution.
func (s *AuthService) PasswordLogin(ctx context.Context, input PasswordLoginInput) (*PasswordLoginResult, error) {
	if s.authenticator == nil {
		return nil, errors.New("password login is not enabled")
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, apperrors.ValidationField("email", "Email is required.")
	}
	if !reEmail.MatchString(email) {
		return nil, apperrors.ValidationField("email", "Enter a valid email address.")
	}
	if utf8.RuneCountInString(input.Password) < minPasswordLen {
		return nil, apperrors.ValidationField("password", fmt.Sprintf("Password must be at least %d characters.", minPasswordLen))
	}

	role, err := domainauth.ParseRole(strings.TrimSpace(input.Role))
	if err != nil || role == domainauth.RoleAdmin {
		return nil, apperrors.ValidationField("role", "Role must be user or creator.")
	}

	identity, err := s.authenticator.Authenticate(ctx, ports.Credentials{
		Email:    email,
		Password: input.Password,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, ports.ErrInvalidCredentials) {
			return nil, ports.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	session := domainauth.Session{
		ID:          generateSessionID(),
		UserID:      identity.UserID,
		DisplayName: identity.DisplayName,
		Email:       identity.Email,
		Role:        role,
		ExpiresAt:   identity.ExpiresAt,
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &PasswordLoginResult{
		Session:      session,
		RedirectPath: session.LandingPath(),
	}, nil
}

// RegisterInput groups parameters for a registration attempt.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// RegisterResult directs the client after a successful registration.
// No session is established; the user signs in afterwards.
type RegisterResult struct {
	DisplayName  string
	Role         domainauth.Role
	RedirectPath string
}

// Register validates a sign-up form. There is no account database, so a
// structurally valid submission always succeeds with role user and the
// client is sent to the login page.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	_ = ctx

	username := strings.TrimSpace(input.Username)
	if utf8.RuneCountInString(username) < 3 {
		return nil, apperrors.ValidationField("username", "Username must be at least 3 characters.")
	}
	email := strings.TrimSpace(input.Email)
	if !reEmail.MatchString(email) {
		return nil, apperrors.ValidationField("email", "Enter a valid email address.")
	}
	if utf8.RuneCountInString(input.Password) < minPasswordLen {
		return nil, apperrors.ValidationField("password", fmt.Sprintf("Password must be at least %d characters.", minPasswordLen))
	}
	if input.ConfirmPassword != input.Password {
		return nil, apperrors.ValidationField("confirm_password", "Passwords do not match.")
	}

	return &RegisterResult{
		DisplayName:  username,
		Role:         domainauth.RoleUser,
		RedirectPath: "/login",
	}, nil
}

// BeginLoginResult contains the result of beginning an OIDC login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider auth URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if s.provider == nil {
		return nil, errors.New("OIDC login is not enabled")
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	input := ports.BeginInput{RedirectURL: redirectURL}
	authURL, state, nonce, err := s.provider.Begin(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing an OIDC login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session      domainauth.Session
	RedirectPath string
}

// CompleteLogin completes an authentication flow by exchanging the code for an identity,
// mapping roles, and persisting a session.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if s.provider == nil {
		return nil, errors.New("OIDC login is not enabled")
	}
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	exchangeInput := ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	}
	identity, err := s.provider.Exchange(ctx, exchangeInput)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	role := s.roles.Map(identity.Groups)

	session := domainauth.Session{
		ID:          generateSessionID(),
		UserID:      identity.UserID,
		DisplayName: identity.DisplayName,
		Email:       identity.Email,
		Role:        role,
		ExpiresAt:   identity.ExpiresAt,
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &CompleteLoginResult{
		Session:      session,
		RedirectPath: session.LandingPath(),
	}, nil
}

// GetSession retrieves a session by ID. Expired sessions are removed
// from the store before the error is returned.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session. Logging out an unknown or already-removed
// session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	// UUID is URL-safe and has good entropy
	return uuid.New().String()
}
