// Package auth verifies externally issued identity tokens. A Verifier maps an
// opaque credential to the email identity it proves; nothing is stored
// server-side, so every request is verified afresh.
package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Common verification errors
var (
	// ErrMissingToken indicates no credential was supplied
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidToken indicates a malformed token or a bad signature
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrKeyUnavailable indicates the signing keys could not be obtained
	ErrKeyUnavailable = errors.New("signing keys unavailable")
)

// Identity is the verified subject of a credential.
type Identity struct {
	Email   string
	Subject string
	Claims  map[string]any
}

// Verifier validates a raw credential.
type Verifier interface {
	// Verify returns the identity proven by token, or an error wrapping one
	// of the package errors.
	Verify(ctx context.Context, token string) (*Identity, error)
}

// classify folds jwt parse failures into the package error set.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrKeyUnavailable):
		return err
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	default:
		return ErrInvalidToken
	}
}

func identityFromClaims(claims jwt.MapClaims) *Identity {
	email, _ := claims["email"].(string)
	sub, _ := claims.GetSubject()

	out := make(map[string]any, len(claims))
	for k, v := range claims {
		out[k] = v
	}

	return &Identity{
		Email:   email,
		Subject: sub,
		Claims:  out,
	}
}
