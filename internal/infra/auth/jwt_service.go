// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"fieldops/config"
	"fieldops/internal/domain/service"
	"fieldops/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// jwtService validates HMAC-signed access tokens issued by the account service.
type jwtService struct {
	accessSecret []byte
	parser       *jwt.Parser
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	return &jwtService{
		accessSecret: []byte(cfg.SecretKey.Access),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// ValidateToken parses the token and returns its identity claims.
// The subject claim stands in for uid when uid is absent.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.accessSecret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate token")
	}

	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, errors.New("token carries no user id")
	}

	return claims, nil
}
