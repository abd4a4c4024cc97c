package usecase

import (
	"errors"

	"venue-booking/internal/pkg/jwt"
)

var ErrNotAdmin = errors.New("token does not grant admin access")

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (subject string, err error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (string, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}

	if claims.Role != jwt.RoleAdmin {
		return "", ErrNotAdmin
	}

	return claims.Subject, nil
}
