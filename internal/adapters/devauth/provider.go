package devauth

// Package devauth provides a config-driven credential directory for the
// demo/development login. It holds exactly one credential pair per login
// role (user and creator) and verifies submissions against the pair for
// the selected role only.

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	domainauth "github.com/docai/flow-studio/internal/domain/auth"
	"github.com/docai/flow-studio/internal/ports"
)

// Pair is a single configured email/password credential pair.
type Pair struct {
	Email    string
	Password string
}

// Config controls the static credential directory.
type Config struct {
	User            Pair
	Creator         Pair
	SessionDuration time.Duration // default 8h when zero
}

// Directory implements ports.CredentialAuthenticator against the two
// configured pairs. Lookups are keyed by the requested role: submitting
// the user pair under the creator role fails, by design.
type Directory struct {
	pairs           map[domainauth.Role]Pair
	sessionDuration time.Duration
}

// NewDirectory constructs a credential directory from Config.
func NewDirectory(cfg Config) (*Directory, error) {
	if cfg.User.Email == "" || cfg.User.Password == "" {
		return nil, errors.New("devauth: user credential pair is required")
	}
	if cfg.Creator.Email == "" || cfg.Creator.Password == "" {
		return nil, errors.New("devauth: creator credential pair is required")
	}
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	return &Directory{
		pairs: map[domainauth.Role]Pair{
			domainauth.RoleUser:    cfg.User,
			domainauth.RoleCreator: cfg.Creator,
		},
		sessionDuration: dur,
	}, nil
}

// Authenticate compares the submitted credentials against the pair for the
// selected role. Any mismatch yields ports.ErrInvalidCredentials with no
// indication of which part was wrong.
func (d *Directory) Authenticate(_ context.Context, creds ports.Credentials) (domainauth.Identity, error) {
	pair, ok := d.pairs[creds.Role]
	if !ok {
		return domainauth.Identity{}, ports.ErrInvalidCredentials
	}

	emailOK := strings.EqualFold(strings.TrimSpace(creds.Email), pair.Email)
	passOK := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(pair.Password)) == 1
	if !emailOK || !passOK {
		return domainauth.Identity{}, ports.ErrInvalidCredentials
	}

	return domainauth.Identity{
		UserID:      string(creds.Role) + ":" + pair.Email,
		DisplayName: displayNameFor(creds.Role),
		Email:       pair.Email,
		ExpiresAt:   time.Now().Add(d.sessionDuration),
	}, nil
}

// displayNameFor derives the role-based label shown in the navigation bar.
func displayNameFor(role domainauth.Role) string {
	switch role {
	case domainauth.RoleCreator:
		return "Demo Creator"
	case domainauth.RoleAdmin:
		return "Demo Admin"
	default:
		return "Demo User"
	}
}
