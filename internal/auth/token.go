// Package auth implements the authentication capability: JWT minting and
// verification, and the gin middleware that turns a bearer token into an
// explicit principal for the core services.
package auth

import (
	"fmt"
	"time"

	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Role: string(user.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify turns a token into a principal. Any parse, signature, or expiry
// problem comes back as ErrUnauthenticated; callers re-authenticate, they
// do not inspect the cause.
func (m *TokenManager) Verify(tokenString string) (domain.Principal, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	return domain.Principal{UserID: claims.Subject, Role: domain.Role(claims.Role)}, nil
}
