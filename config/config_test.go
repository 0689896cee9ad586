package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAuthModeUnmarshalText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    AuthMode
		expectError bool
	}{
		{name: "credentials", input: "credentials", expected: AuthModeCredentials},
		{name: "oidc", input: "oidc", expected: AuthModeOIDC},
		{name: "mixed case", input: "OIDC", expected: AuthModeOIDC},
		{name: "unknown", input: "saml", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for %q, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.expected {
				t.Fatalf("got %q, want %q", mode, tt.expected)
			}
		})
	}
}

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModeCredentials {
		t.Errorf("Auth.Mode = %q, want credentials", cfg.Auth.Mode)
	}
	if cfg.Auth.Credentials.UserEmail != "user@docai.dev" {
		t.Errorf("Credentials.UserEmail = %q", cfg.Auth.Credentials.UserEmail)
	}
	if cfg.Auth.SessionTTL != 8*time.Hour {
		t.Errorf("Auth.SessionTTL = %v, want 8h", cfg.Auth.SessionTTL)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port = %d, want 5432", cfg.Postgres.Port)
	}
	if !cfg.Postgres.RunMigrationsOnStart {
		t.Error("Postgres.RunMigrationsOnStart should default to true")
	}
}

func TestAppConfigFromEnv(t *testing.T) {
	t.Setenv("AUTH_MODE", "oidc")
	t.Setenv("OIDC_DISCOVERY_URL", "https://idp.example.com/.well-known/openid-configuration")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_URI", "redis://cache.internal:6379")
	t.Setenv("SESSION_TTL", "30m")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModeOIDC {
		t.Errorf("Auth.Mode = %q, want oidc", cfg.Auth.Mode)
	}
	if cfg.Auth.OIDC.DiscoveryURL == "" {
		t.Error("OIDC.DiscoveryURL should be set from env")
	}
	if cfg.Postgres.Host != "db.internal" {
		t.Errorf("Postgres.Host = %q", cfg.Postgres.Host)
	}
	if cfg.Redis.URI != "redis://cache.internal:6379" {
		t.Errorf("Redis.URI = %q", cfg.Redis.URI)
	}
	if cfg.Auth.SessionTTL != 30*time.Minute {
		t.Errorf("Auth.SessionTTL = %v, want 30m", cfg.Auth.SessionTTL)
	}
}

func TestSanitizeClampsSessionTTL(t *testing.T) {
	cfg := AppConfig{Auth: AuthConfig{SessionTTL: -time.Minute}}
	cfg.Sanitize()
	if cfg.Auth.SessionTTL != 8*time.Hour {
		t.Errorf("SessionTTL = %v, want 8h fallback", cfg.Auth.SessionTTL)
	}
}

func TestDetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	var cfg AppConfig
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Error("IsDev should be true when NODE_ENV=development")
	}
}
