package services

import (
	"accounts-backend/application/dto"
	"accounts-backend/domain/entities"
	"accounts-backend/pkg/auth"
	apperrors "accounts-backend/pkg/errors"
)

// AuthService issues access tokens for validated users.
type AuthService struct {
	generator *auth.JWTGenerator
}

// NewAuthService creates an auth service around a token generator.
func NewAuthService(generator *auth.JWTGenerator) *AuthService {
	return &AuthService{generator: generator}
}

// GenerateToken issues a signed JWT for the given user.
func (s *AuthService) GenerateToken(user *entities.User) (*dto.LoginResponse, error) {
	token, err := s.generator.GenerateToken(user.UserID, user.Name, user.Role())
	if err != nil {
		return nil, apperrors.Wrap(err, "signing token")
	}
	return &dto.LoginResponse{Token: token}, nil
}
