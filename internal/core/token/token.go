// Package token mints and validates the signed bearer tokens that prove
// control of an account without a server-side session. Tokens are
// self-contained: HS256-signed JWTs carrying only the account id and an
// absolute expiry.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// Service issues and verifies bearer tokens with a server-held secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService builds a token service. A non-positive ttl falls back to 24h.
func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token for the given account id.
func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded account id.
// An expired-but-otherwise-valid token yields domain.ErrTokenExpired; any
// other defect yields domain.ErrTokenInvalid. Callers render different
// messages for the two cases.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return "", domain.ErrTokenInvalid
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", domain.ErrTokenInvalid
	}
	return userID, nil
}
