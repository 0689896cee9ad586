package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/docai/flow-studio/internal/domain/auth"
	apperrors "github.com/docai/flow-studio/internal/errors"
	mockauth "github.com/docai/flow-studio/internal/mocks/auth"
	"github.com/docai/flow-studio/internal/ports"
)

func newTestAuthService() (*AuthService, *mockauth.MemorySessionStore) {
	store := mockauth.NewMemorySessionStore()
	svc := NewAuthService(AuthServiceOptions{
		Authenticator: mockauth.NewFakeCredentialDirectory(),
		Provider:      mockauth.NewMockAuthProvider(),
		Sessions:      store,
		Roles:         mockauth.StaticRoleMapper{AdminGroup: "admins", CreatorGroup: "creators"},
	})
	return svc, store
}

func TestAuthService_PasswordLogin(t *testing.T) {
	svc, store := newTestAuthService()

	result, err := svc.PasswordLogin(context.Background(), PasswordLoginInput{
		Email:    "user@docai.test",
		Password: "user-password",
		Role:     "user",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Session.ID)
	assert.Equal(t, domainauth.RoleUser, result.Session.Role)
	assert.Equal(t, "/dashboard", result.RedirectPath)
	assert.Equal(t, 1, store.Len())

	// The session made it to the store wholesale.
	stored, err := store.Get(context.Background(), result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Session, stored)
}

func TestAuthService_PasswordLoginCreatorLanding(t *testing.T) {
	svc, _ := newTestAuthService()

	result, err := svc.PasswordLogin(context.Background(), PasswordLoginInput{
		Email:    "creator@docai.test",
		Password: "creator-password",
		Role:     "creator",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleCreator, result.Session.Role)
	assert.Equal(t, "/creator-dashboard", result.RedirectPath)
}

func TestAuthService_PasswordLoginRoleKeyed(t *testing.T) {
	svc, store := newTestAuthService()

	// Valid user pair submitted under the creator tab must fail.
	_, err := svc.PasswordLogin(context.Background(), PasswordLoginInput{
		Email:    "user@docai.test",
		Password: "user-password",
		Role:     "creator",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 0, store.Len())
}

func TestAuthService_PasswordLoginValidation(t *testing.T) {
	svc, store := newTestAuthService()
	ctx := context.Background()

	tests := []struct {
		name  string
		input PasswordLoginInput
		field string
	}{
		{"missing email", PasswordLoginInput{Password: "user-password", Role: "user"}, "email"},
		{"malformed email", PasswordLoginInput{Email: "not-an-email", Password: "user-password", Role: "user"}, "email"},
		{"short password", PasswordLoginInput{Email: "user@docai.test", Password: "short", Role: "user"}, "password"},
		{"unknown role", PasswordLoginInput{Email: "user@docai.test", Password: "user-password", Role: "root"}, "role"},
		{"admin role not a tab", PasswordLoginInput{Email: "user@docai.test", Password: "user-password", Role: "admin"}, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PasswordLogin(ctx, tt.input)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.field, apperrors.FieldOf(err))
		})
	}
	// Structural failures never reach the store.
	assert.Equal(t, 0, store.Len())
}

func TestAuthService_PasswordLoginGenericMismatch(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.PasswordLogin(context.Background(), PasswordLoginInput{
		Email:    "user@docai.test",
		Password: "wrong-password",
		Role:     "user",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	// No field attribution on a credential mismatch.
	assert.Empty(t, apperrors.FieldOf(err))
}

func TestAuthService_Register(t *testing.T) {
	svc, store := newTestAuthService()

	result, err := svc.Register(context.Background(), RegisterInput{
		Username:        "newuser",
		Email:           "new@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "newuser", result.DisplayName)
	assert.Equal(t, domainauth.RoleUser, result.Role)
	assert.Equal(t, "/login", result.RedirectPath)
	// Registration never establishes a session.
	assert.Equal(t, 0, store.Len())
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
		field string
	}{
		{"short username", RegisterInput{Username: "ab", Email: "a@b.co", Password: "password123", ConfirmPassword: "password123"}, "username"},
		{"bad email", RegisterInput{Username: "newuser", Email: "nope", Password: "password123", ConfirmPassword: "password123"}, "email"},
		{"short password", RegisterInput{Username: "newuser", Email: "a@b.co", Password: "short", ConfirmPassword: "short"}, "password"},
		{"mismatched confirmation", RegisterInput{Username: "newuser", Email: "a@b.co", Password: "password123", ConfirmPassword: "password124"}, "confirm_password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.input)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.field, apperrors.FieldOf(err))
		})
	}
}

func TestAuthService_BeginLogin(t *testing.T) {
	svc, _ := newTestAuthService()

	result, err := svc.BeginLogin(context.Background(), "https://app.example.com/auth/callback")
	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", result.AuthURL)
	assert.Equal(t, "state-1", result.State)
	assert.Equal(t, "nonce-1", result.Nonce)

	_, err = svc.BeginLogin(context.Background(), "")
	assert.Error(t, err)
}

func TestAuthService_CompleteLogin(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	provider := mockauth.NewMockAuthProvider()
	provider.DefaultUser.Groups = []string{"creators"}
	svc := NewAuthService(AuthServiceOptions{
		Provider: provider,
		Sessions: store,
		Roles:    mockauth.StaticRoleMapper{AdminGroup: "admins", CreatorGroup: "creators"},
	})

	result, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{
		Code:  "code",
		State: "state-1",
		Nonce: "nonce-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleCreator, result.Session.Role)
	assert.Equal(t, "/creator-dashboard", result.RedirectPath)
	assert.Equal(t, 1, store.Len())
}

func TestAuthService_CompleteLoginMissingParams(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.CompleteLogin(ctx, CompleteLoginInput{State: "s", Nonce: "n"})
	assert.Error(t, err)
	_, err = svc.CompleteLogin(ctx, CompleteLoginInput{Code: "c", Nonce: "n"})
	assert.Error(t, err)
	_, err = svc.CompleteLogin(ctx, CompleteLoginInput{Code: "c", State: "s"})
	assert.Error(t, err)
}

func TestAuthService_GetSession(t *testing.T) {
	svc, store := newTestAuthService()
	ctx := context.Background()

	sess := domainauth.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		Role:      domainauth.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := svc.GetSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess, *got)

	_, err = svc.GetSession(ctx, "missing")
	assert.Error(t, err)

	_, err = svc.GetSession(ctx, "")
	assert.Error(t, err)
}

func TestAuthService_GetSessionExpired(t *testing.T) {
	svc, store := newTestAuthService()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domainauth.Session{
		ID:        "sess-old",
		UserID:    "user-1",
		Role:      domainauth.RoleUser,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := svc.GetSession(ctx, "sess-old")
	require.Error(t, err)
	// Expired sessions are cleaned up on read.
	assert.Equal(t, 0, store.Len())
}

func TestAuthService_Logout(t *testing.T) {
	svc, store := newTestAuthService()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domainauth.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		Role:      domainauth.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, svc.Logout(ctx, "sess-1"))
	assert.Equal(t, 0, store.Len())

	// Logout is idempotent; empty ID is a no-op.
	assert.NoError(t, svc.Logout(ctx, "sess-1"))
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestAuthService_PasswordLoginDisabled(t *testing.T) {
	svc := NewAuthService(AuthServiceOptions{
		Sessions: mockauth.NewMemorySessionStore(),
	})

	_, err := svc.PasswordLogin(context.Background(), PasswordLoginInput{
		Email:    "user@docai.test",
		Password: "user-password",
		Role:     "user",
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrInvalidCredentials)
}
