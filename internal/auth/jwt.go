// Package auth adapts the platform identity provider: it validates the
// bearer tokens issued at sign-in and resolves the opaque user id the
// rest of the service trusts.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopfront/account-service/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewJWTService(cfg config.JWT) *JWTService {
	return &JWTService{
		signingKey: []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
	}
}

// ValidateToken returns the user id carried by a valid token.
func (s *JWTService) ValidateToken(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.UserID == "" {
		return "", ErrInvalidToken
	}
	return c.UserID, nil
}

// GenerateToken issues a token for the given user. The identity
// provider normally does this; it lives here for tooling and tests.
func (s *JWTService) GenerateToken(userID string, expiresIn time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
		},
	})

	return token.SignedString(s.signingKey)
}
