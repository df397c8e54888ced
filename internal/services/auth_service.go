package services

import (
	"errors"
	"fmt"
	"log"

	"contactbook/internal/models"
	"contactbook/internal/repositories"
)

// AuthService handles business logic for registration, login and token checks.
type AuthService struct {
	userRepo repositories.UserRepository
	hasher   PasswordHasher
	tokens   *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, hasher PasswordHasher, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// RegisterUser creates an account with a hashed password. The username lookup
// is only a fast path; a concurrent registration that slips past it is still
// rejected by the store's unique index.
func (s *AuthService) RegisterUser(username, password string) (*models.User, error) {
	existing, err := s.userRepo.GetByUsername(username)
	switch {
	case err == nil && existing != nil:
		return nil, ErrUsernameTaken
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, PasswordHash: hashed}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// LoginUser authenticates a user and returns a signed token. Unknown usernames
// and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) LoginUser(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ValidateToken verifies a bearer token and returns the user ID it carries.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	userID, err := s.tokens.Verify(tokenString)
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return "", err
	}
	return userID, nil
}
