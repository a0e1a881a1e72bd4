// Package auth implements password hashing and the bearer token service.
// Tokens are stateless HS256 JWTs carrying the owning user's id and an
// absolute expiry; nothing is persisted.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jotter/internal/apperrors"
)

// Claims embeds the registered claim set and adds the owning user's id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// TokenService issues and verifies bearer tokens with a fixed TTL.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue signs a token for userID expiring ttl from now.
func (s *TokenService) Issue(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})
	return token.SignedString(s.secret)
}

// Verify checks signature integrity, then expiry, and returns the embedded
// claims. Expired tokens fail with apperrors.ErrTokenExpired, everything
// else that does not parse with apperrors.ErrTokenMalformed.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenMalformed
	}
	if !token.Valid {
		return nil, apperrors.ErrTokenMalformed
	}
	return claims, nil
}
