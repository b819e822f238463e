package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates self-contained session tokens. A token
// is an HS256 JWT whose subject is the internal user ID, valid from issuance
// until the configured TTL elapses. Validity is fully determined by the
// signature, the expiry, and (at the middleware layer) the continued
// existence of the subject user; there is no server-side session store.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService with the given signing secret and
// token lifetime. An empty secret is tolerated at construction so the
// misconfiguration can be reported per request instead of crashing the
// process; every Issue/Validate call on such a service fails with
// ErrSecretMissing.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Ready reports whether the signing secret is configured
func (s *TokenService) Ready() bool {
	return len(s.secret) > 0
}

// Issue mints a signed session token for the given user ID
func (s *TokenService) Issue(userID string) (string, error) {
	if !s.Ready() {
		return "", ErrSecretMissing
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks a session token's signature and expiry and returns the
// subject user ID. It has no side effects and is a pure function of the
// token, the configured secret, and the current time.
func (s *TokenService) Validate(tokenString string) (string, error) {
	if !s.Ready() {
		return "", ErrSecretMissing
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}
