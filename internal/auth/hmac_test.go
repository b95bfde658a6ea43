package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewHMACVerifier_ShortSecret(t *testing.T) {
	_, err := NewHMACVerifier("short", zerolog.Nop())
	assert.Error(t, err)
}

func TestHMACVerifier_Verify(t *testing.T) {
	verifier, err := NewHMACVerifier(testSecret, zerolog.Nop())
	require.NoError(t, err)

	valid, err := IssueHMACToken(testSecret, "a@x.com", time.Hour)
	require.NoError(t, err)

	expired, err := IssueHMACToken(testSecret, "a@x.com", -time.Hour)
	require.NoError(t, err)

	otherKey, err := IssueHMACToken("ffffffffffffffffffffffffffffffff", "a@x.com", time.Hour)
	require.NoError(t, err)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "anon",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@x.com",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name          string
		token         string
		expectedErr   error
		expectedEmail string
	}{
		{name: "Valid token", token: valid, expectedEmail: "a@x.com"},
		{name: "Token without email", token: noEmail, expectedEmail: ""},
		{name: "Expired token", token: expired, expectedErr: ErrExpiredToken},
		{name: "Wrong signing key", token: otherKey, expectedErr: ErrInvalidToken},
		{name: "Missing expiry", token: noExpiry, expectedErr: ErrInvalidToken},
		{name: "Malformed token", token: "not.a.jwt", expectedErr: ErrInvalidToken},
		{name: "Empty token", token: "", expectedErr: ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := verifier.Verify(context.Background(), tt.token)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, identity)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedEmail, identity.Email)
			assert.NotEmpty(t, identity.Claims)
		})
	}
}
