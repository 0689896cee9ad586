package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"fmt"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleUser    Role = "user"
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
)

// ParseRole converts a raw string into a Role, rejecting anything outside
// the closed set. Callers at storage/cookie read boundaries must treat a
// parse failure as "no role" rather than propagating the raw string.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleUser, RoleCreator, RoleAdmin:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Identity represents the authenticated principal returned by a provider.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID      string // stable user identifier (e.g., sub or account name)
	DisplayName string
	Email       string
	Groups      []string
	ExpiresAt   time.Time // absolute expiry from the provider
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier; the client only ever holds the ID.
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IsUser returns true if the session role is user.
func (s Session) IsUser() bool { return s.Role == RoleUser }

// IsCreator returns true if the session role is creator.
func (s Session) IsCreator() bool { return s.Role == RoleCreator }

// IsAdmin returns true if the session role is admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// LandingPath is the post-login destination for the session's role.
// Creators land on their dashboard; everyone else on the user dashboard.
func (s Session) LandingPath() string {
	if s.IsCreator() {
		return "/creator-dashboard"
	}
	return "/dashboard"
}
