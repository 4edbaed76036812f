package auth

import (
	"crypto/subtle"
	"errors"
	"time"
)

// ErrInvalidPassword is deliberately generic: there is a single admin
// identity, so there is nothing more specific to reveal.
var ErrInvalidPassword = errors.New("incorrect password")

// Service decides whether a caller holds the admin capability. It is
// stateless: validity of a session is fully determined by the token
// signature and expiry.
type Service struct {
	password string
	secret   string
	ttl      time.Duration
}

func NewService(password, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &Service{
		password: password,
		secret:   secret,
		ttl:      ttl,
	}
}

// Login checks the shared admin password and issues a signed session token.
// The comparison is exact and case-sensitive; an unset password locks the
// gate entirely.
func (s *Service) Login(password string) (string, error) {
	if s.password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", ErrInvalidPassword
	}
	return generateToken(s.secret, time.Now(), s.ttl)
}

// Verify reports whether the token carries a valid admin session. Malformed,
// expired or wrongly-signed tokens are not errors, just "not authenticated".
func (s *Service) Verify(tokenString string) bool {
	if tokenString == "" {
		return false
	}
	claims, err := parseToken(s.secret, tokenString)
	if err != nil {
		return false
	}
	return claims.Admin
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}
