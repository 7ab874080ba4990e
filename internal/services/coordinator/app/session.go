package app

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
)

// sessionEnv holds raw env values before post-parse validation.
type sessionEnv struct {
	Issuer    string `env:"COLLABHUB_SESSION_ISSUER"`
	Audience  string `env:"COLLABHUB_SESSION_AUDIENCE"`
	PublicKey string `env:"COLLABHUB_SESSION_PUBLIC_KEY"`
}

// SessionConfig defines how session tokens are verified.
type SessionConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// Session is a verified signed-in identity.
type Session struct {
	Email     string
	Name      string
	Token     string
	ExpiresAt time.Time
}

// sessionClaims is the internal claims type used for JWT parsing.
type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoadSessionConfigFromEnv reads session verification configuration.
func LoadSessionConfigFromEnv(now func() time.Time) (SessionConfig, error) {
	var raw sessionEnv
	if err := env.Parse(&raw); err != nil {
		return SessionConfig{}, fmt.Errorf("parse session env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	publicKey := strings.TrimSpace(raw.PublicKey)
	if issuer == "" {
		return SessionConfig{}, fmt.Errorf("COLLABHUB_SESSION_ISSUER is required")
	}
	if audience == "" {
		return SessionConfig{}, fmt.Errorf("COLLABHUB_SESSION_AUDIENCE is required")
	}
	if publicKey == "" {
		return SessionConfig{}, fmt.Errorf("COLLABHUB_SESSION_PUBLIC_KEY is required")
	}
	keyBytes, err := decodeBase64(publicKey)
	if err != nil {
		return SessionConfig{}, fmt.Errorf("decode session public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return SessionConfig{}, fmt.Errorf("session public key must be %d bytes", ed25519.PublicKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return SessionConfig{
		Issuer:   issuer,
		Audience: audience,
		Key:      ed25519.PublicKey(keyBytes),
		Now:      now,
	}, nil
}

// VerifySessionToken verifies an EdDSA-signed session token and returns the
// identity it carries.
func VerifySessionToken(token string, cfg SessionConfig) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, apperrors.New(apperrors.CodeSessionTokenInvalid, "session token is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.Key) != ed25519.PublicKeySize {
		return Session{}, errors.New("session verifier is not configured")
	}

	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (any, error) {
		return cfg.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Session{}, mapJWTError(err)
	}

	if parsed.Issuer == "" || parsed.Issuer != cfg.Issuer {
		return Session{}, apperrors.WithMetadata(apperrors.CodeSessionTokenInvalid,
			"session token issuer mismatch", map[string]string{"Field": "issuer"})
	}
	if !audienceContains(parsed.Audience, cfg.Audience) {
		return Session{}, apperrors.WithMetadata(apperrors.CodeSessionTokenInvalid,
			"session token audience mismatch", map[string]string{"Field": "audience"})
	}
	email := domain.NormalizeEmail(parsed.Email)
	if email == "" {
		return Session{}, apperrors.New(apperrors.CodeSessionTokenInvalid, "session token email is required")
	}
	if parsed.ExpiresAt == nil {
		return Session{}, apperrors.New(apperrors.CodeSessionTokenInvalid, "session token exp is required")
	}

	now := cfg.Now().UTC()
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(now) {
		return Session{}, apperrors.New(apperrors.CodeSessionTokenExpired, "session token is expired")
	}
	if parsed.NotBefore != nil && now.Before(parsed.NotBefore.Time.UTC()) {
		return Session{}, apperrors.New(apperrors.CodeSessionTokenInvalid, "session token not active yet")
	}

	return Session{
		Email:     email,
		Name:      parsed.Name,
		Token:     token,
		ExpiresAt: exp,
	}, nil
}

// SessionStore holds the active session for the process. The rest client
// reads its token through Token, which returns empty when signed out.
type SessionStore struct {
	mu      sync.RWMutex
	session *Session
}

// Set replaces the active session.
func (s *SessionStore) Set(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
}

// Clear signs out.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

// Active returns the current session, if any.
func (s *SessionStore) Active() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

// Token returns the active session token or empty.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrEd25519Verification) {
		return apperrors.New(apperrors.CodeSessionTokenInvalid, "session token signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.New(apperrors.CodeSessionTokenInvalid, "session token alg is invalid")
	}
	return apperrors.New(apperrors.CodeSessionTokenInvalid, "session token is invalid")
}

// audienceContains reports whether the audience list contains the value.
func audienceContains(aud jwt.ClaimStrings, value string) bool {
	for _, item := range aud {
		if item == value {
			return true
		}
	}
	return false
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	if decoded, err := base64.RawStdEncoding.DecodeString(value); err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
