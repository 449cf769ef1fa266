package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/task-tracker-api/internal/auth"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
var ErrInvalidCredentials = apierrors.NewAPIError(apierrors.KindUnauthenticated, "Invalid username or password")

// AuthService handles authentication related business logic.
type AuthService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Authenticate verifies credentials and returns the principal they identify.
// The email lookup is exact and case-sensitive.
func (s *AuthService) Authenticate(ctx context.Context, input LoginInput) (*auth.Principal, error) {
	user, err := s.users.FindByEmail(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordDigest, input.Password) {
		return nil, ErrInvalidCredentials
	}

	return &auth.Principal{
		Subject:     user.Email,
		Authorities: user.Authorities(),
	}, nil
}

// Login authenticates the credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	principal, err := s.Authenticate(ctx, input)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(principal.Subject, principal.Authorities)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
