package auth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

const (
	firebaseIssuerPrefix = "https://securetoken.google.com/"
	defaultKeyTTL        = time.Hour
)

// FirebaseConfig configures verification of Firebase ID tokens.
type FirebaseConfig struct {
	ProjectID string
	CertsURL  string
}

// firebaseVerifier validates RS256 Firebase ID tokens against Google's
// published x509 certificates.
type firebaseVerifier struct {
	projectID string
	keys      *keySet
	timeFunc  func() time.Time
	clockSkew time.Duration
	logger    zerolog.Logger
}

// NewFirebaseVerifier creates a Verifier for Firebase ID tokens.
func NewFirebaseVerifier(cfg FirebaseConfig, client *http.Client, logger zerolog.Logger) (Verifier, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firebase project ID is required")
	}
	if cfg.CertsURL == "" {
		return nil, fmt.Errorf("firebase certs URL is required")
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	logger = logger.With().Str("component", "firebase-verifier").Logger()

	return &firebaseVerifier{
		projectID: cfg.ProjectID,
		keys: &keySet{
			url:    cfg.CertsURL,
			client: client,
			now:    time.Now,
			logger: logger,
		},
		timeFunc:  time.Now,
		clockSkew: 1 * time.Minute,
		logger:    logger,
	}, nil
}

// Verify checks signature, issuer, audience, subject and time claims.
func (v *firebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			kid, _ := t.Header["kid"].(string)
			if kid == "" {
				return nil, fmt.Errorf("token has no kid header")
			}
			return v.keys.lookup(ctx, kid)
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer(firebaseIssuerPrefix+v.projectID),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.clockSkew),
		jwt.WithTimeFunc(v.timeFunc),
	)
	if err != nil {
		v.logger.Debug().Err(err).Msg("token rejected")
		return nil, classify(err)
	}

	if sub, _ := claims.GetSubject(); sub == "" {
		v.logger.Debug().Msg("token rejected: empty subject")
		return nil, ErrInvalidToken
	}

	return identityFromClaims(claims), nil
}

// keySet caches the kid -> public key map until the Cache-Control max-age of
// the last response runs out.
type keySet struct {
	url    string
	client *http.Client
	now    func() time.Time
	logger zerolog.Logger

	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey
	expires time.Time
}

func (s *keySet) lookup(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	s.mu.RLock()
	key, ok := s.keys[kid]
	fresh := s.now().Before(s.expires)
	s.mu.RUnlock()

	if ok && fresh {
		return key, nil
	}

	if err := s.refresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok = s.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return key, nil
}

func (s *keySet) refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	if s.keys != nil && s.now().Before(s.expires) {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Str("url", s.url).Msg("failed to fetch signing keys")
		return fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error().Int("status", resp.StatusCode).Str("url", s.url).Msg("unexpected signing key response")
		return fmt.Errorf("%w: status %d", ErrKeyUnavailable, resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrKeyUnavailable, err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pem := range certs {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			s.logger.Warn().Err(err).Str("kid", kid).Msg("skipping unparsable signing key")
			continue
		}
		keys[kid] = key
	}

	s.keys = keys
	s.expires = s.now().Add(maxAge(resp.Header.Get("Cache-Control")))

	s.logger.Debug().Int("keys", len(keys)).Time("expires", s.expires).Msg("signing keys refreshed")

	return nil
}

// maxAge extracts max-age from a Cache-Control header, defaulting to an hour.
func maxAge(header string) time.Duration {
	for _, directive := range strings.Split(header, ",") {
		directive = strings.TrimSpace(directive)
		if v, ok := strings.CutPrefix(directive, "max-age="); ok {
			if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
				return time.Duration(secs) * time.Second
			}
		}
	}
	return defaultKeyTTL
}
