package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/docai/flow-studio/config"
	"github.com/docai/flow-studio/internal/adapters/authroles"
	"github.com/docai/flow-studio/internal/adapters/devauth"
	"github.com/docai/flow-studio/internal/adapters/oidc"
	redisadapter "github.com/docai/flow-studio/internal/adapters/redis"
	"github.com/docai/flow-studio/internal/service"
)

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
// Returns nil if auth is not configured or configuration is invalid.
func BuildAuthService(cfg AuthConfig) *service.AuthService {
	if cfg.RedisClient == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: redis client not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}

	// Redis session store and role mapper are shared by both modes
	sessionStore := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "session:")
	roleMapper := authroles.StaticRoleMapper{
		AdminGroup:   cfg.Auth.AdminGroup,
		CreatorGroup: cfg.Auth.CreatorGroup,
	}

	switch cfg.Auth.Mode {
	case config.AuthModeCredentials:
		return buildCredentialsAuthService(cfg, sessionStore, roleMapper)

	case config.AuthModeOIDC:
		return buildOIDCAuthService(cfg, sessionStore, roleMapper)

	default:
		return nil
	}
}

func buildCredentialsAuthService(
	cfg AuthConfig,
	sessionStore *redisadapter.SessionStore,
	roleMapper authroles.StaticRoleMapper,
) *service.AuthService {
	dir, err := devauth.NewDirectory(devauth.Config{
		User: devauth.Pair{
			Email:    cfg.Auth.Credentials.UserEmail,
			Password: cfg.Auth.Credentials.UserPassword,
		},
		Creator: devauth.Pair{
			Email:    cfg.Auth.Credentials.CreatorEmail,
			Password: cfg.Auth.Credentials.CreatorPassword,
		},
		SessionDuration: cfg.Auth.SessionTTL,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create credential directory, auth disabled", "error", err)
		}
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Authenticator: dir,
		Sessions:      sessionStore,
		Roles:         roleMapper,
	})
}

func buildOIDCAuthService(
	cfg AuthConfig,
	sessionStore *redisadapter.SessionStore,
	roleMapper authroles.StaticRoleMapper,
) *service.AuthService {
	// Only enable when fully configured
	oc := cfg.Auth.OIDC
	if oc.DiscoveryURL == "" || oc.ClientID == "" || oc.ClientSecret == "" {
		if cfg.Logger != nil {
			cfg.Logger.Warn("AuthModeOIDC selected but required config missing; auth disabled",
				"discovery_url_empty", oc.DiscoveryURL == "",
				"client_id_empty", oc.ClientID == "",
				"client_secret_empty", oc.ClientSecret == "",
			)
		}
		return nil
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     oc.ClientID,
		ClientSecret: oc.ClientSecret,
		RedirectURL:  oc.RedirectURL,
		Scope:        oc.Scope,
		DiscoveryURL: oc.DiscoveryURL,
		LogoutURL:    oc.LogoutURL,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create OIDC provider, auth disabled", "error", err)
		}
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: prov,
		Sessions: sessionStore,
		Roles:    roleMapper,
	})
}
