package service

import (
	"context"

	"food-fridge/internal/auth"
	"food-fridge/internal/model"

	"github.com/rs/zerolog"
)

// authService implements AuthService on top of an identity verifier.
type authService struct {
	verifier auth.Verifier
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(verifier auth.Verifier, logger zerolog.Logger) AuthService {
	return &authService{
		verifier: verifier,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Login verifies token. The credential itself becomes the session, so
// nothing is persisted.
func (s *authService) Login(ctx context.Context, token string) (*auth.Identity, error) {
	if token == "" {
		return nil, model.ErrTokenRequired
	}

	identity, err := s.verifier.Verify(ctx, token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login rejected")
		return nil, err
	}

	s.logger.Info().Str("email", identity.Email).Msg("login accepted")

	return identity, nil
}
