package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims carries the identity extracted from a verified access token.
type TokenClaims struct {
	UserID uuid.UUID
	Role   string
}

// GenerateAccessToken signs an HS256 JWT with sub/role/exp/iat claims.
func GenerateAccessToken(config JWTConfig, userID uuid.UUID, role string) (string, time.Time, error) {
	exp := time.Now().UTC().Add(time.Duration(config.ExpiryHours) * time.Hour)

	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}

	return signed, exp, nil
}

// ParseAccessToken verifies signature and expiry, then returns the claims.
func ParseAccessToken(config JWTConfig, tokenStr string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}

	role, _ := claims["role"].(string)

	return &TokenClaims{UserID: userID, Role: role}, nil
}
