package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"food-fridge/internal/auth"
	"food-fridge/internal/model"

	"github.com/rs/zerolog"
)

// TokenCookie is the name of the cookie that carries the session credential.
const TokenCookie = "token"

// contextKey defines a type for context keys to avoid collisions.
type contextKey string

// identityKey holds the verified *auth.Identity of the caller.
const identityKey contextKey = "identity"

// Authenticate verifies the bearer credential of a request and binds the
// resulting identity to its context. A missing credential yields 401 and a
// rejected one 403; in both cases next is not invoked.
func Authenticate(verifier auth.Verifier, logger zerolog.Logger) func(http.Handler) http.Handler {
	logger = logger.With().Str("middleware", "auth").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := Credential(r)
			if token == "" {
				logger.Debug().Str("path", r.URL.Path).Msg("missing credential")
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				event := logger.Warn()
				if errors.Is(err, auth.ErrKeyUnavailable) {
					event = logger.Error()
				}
				event.Err(err).Str("path", r.URL.Path).Msg("credential rejected")
				writeError(w, http.StatusForbidden, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// Credential returns the bearer token from the Authorization header, falling
// back to the token cookie. Returns "" when neither is present.
func Credential(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(token) != "" {
			return strings.TrimSpace(token)
		}
	}

	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value
	}

	return ""
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom extracts the verified identity from ctx.
func IdentityFrom(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*auth.Identity)
	return identity, ok && identity != nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: message})
}
