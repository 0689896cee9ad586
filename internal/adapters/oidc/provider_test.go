package oidc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProvider_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProviderConfig
	}{
		{"missing client id", ProviderConfig{ClientSecret: "s", RedirectURL: "r", DiscoveryURL: "d"}},
		{"missing client secret", ProviderConfig{ClientID: "c", RedirectURL: "r", DiscoveryURL: "d"}},
		{"missing redirect url", ProviderConfig{ClientID: "c", ClientSecret: "s", DiscoveryURL: "d"}},
		{"missing discovery url", ProviderConfig{ClientID: "c", ClientSecret: "s", RedirectURL: "r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestMapIDTokenClaims(t *testing.T) {
	f := mapIDTokenClaims(idTokenClaims{
		Sub:       "sub-1",
		Name:      "Ada Lovelace",
		GivenName: "Ada",
		Family:    "Lovelace",
		Email:     "ada@example.com",
		Groups:    []string{"creators"},
	})

	assert.Equal(t, "sub-1", f.userID)
	assert.Equal(t, "Ada Lovelace", f.name)
	assert.Equal(t, "ada@example.com", f.email)
	assert.Equal(t, []string{"creators"}, f.groups)
}

func TestFillFromUserInfoClaims_OnlyFillsMissing(t *testing.T) {
	f := idFields{userID: "keep", email: ""}
	fillFromUserInfoClaims(&f, UserInfo{
		Subject: "replace",
		Email:   "filled@example.com",
		Groups:  []string{"users"},
	})

	assert.Equal(t, "keep", f.userID)
	assert.Equal(t, "filled@example.com", f.email)
	assert.Equal(t, []string{"users"}, f.groups)
}

func TestDisplayName_Precedence(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", displayName(idFields{name: "Ada Lovelace", givenName: "A", email: "e"}))
	assert.Equal(t, "Ada Lovelace", displayName(idFields{givenName: "Ada", familyName: "Lovelace", email: "e"}))
	assert.Equal(t, "ada@example.com", displayName(idFields{email: "ada@example.com"}))
}

func TestGenerateRandomString(t *testing.T) {
	s, err := generateRandomString(32)
	assert.NoError(t, err)
	assert.Len(t, s, 32)

	s2, err := generateRandomString(32)
	assert.NoError(t, err)
	assert.NotEqual(t, s, s2)

	empty, err := generateRandomString(0)
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetIDTokenFromToken_Nil(t *testing.T) {
	_, err := getIDTokenFromToken(nil)
	assert.Error(t, err)
}
