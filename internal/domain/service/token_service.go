package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity an upstream issuer put in the token.
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService validates bearer tokens. Tokens are issued elsewhere.
type TokenService interface {
	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*Claims, error)
}
