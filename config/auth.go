package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeCredentials uses the two static role-keyed credential
	// pairs (demo/development default).
	AuthModeCredentials AuthMode = "credentials"
	// AuthModeOIDC uses OIDC/OAuth2 for authentication.
	AuthModeOIDC AuthMode = "oidc"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "credentials", "oidc":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: credentials, oidc)", v)
	}
}

// OIDCConfig contains OIDC/OAuth2 configuration.
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"docai-flow"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:"docai-flow"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email groups"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	LogoutURL    string `env:"LOGOUT_URL"`
}

// CredentialsConfig holds the two static role-keyed pairs used when
// AUTH_MODE=credentials. The user pair only works on the user tab and
// the creator pair only on the creator tab.
type CredentialsConfig struct {
	UserEmail       string `env:"USER_EMAIL"       envDefault:"user@docai.dev"`
	UserPassword    string `env:"USER_PASSWORD"    envDefault:"user-password"`
	CreatorEmail    string `env:"CREATOR_EMAIL"    envDefault:"creator@docai.dev"`
	CreatorPassword string `env:"CREATOR_PASSWORD" envDefault:"creator-password"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"credentials"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// Credentials configuration (used when Mode=credentials).
	Credentials CredentialsConfig `envPrefix:"CREDENTIALS_"`

	// AdminGroup is the IdP group mapped to the admin role.
	AdminGroup string `env:"ADMIN_GROUP" envDefault:"docai-admins"`

	// CreatorGroup is the IdP group mapped to the creator role.
	CreatorGroup string `env:"CREATOR_GROUP" envDefault:"docai-creators"`

	// SessionTTL is the lifetime of password-login sessions.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 8 * time.Hour
	}
}
