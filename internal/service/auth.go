// Package service — authentication business logic.
//
// AuthService sits between the HTTP handlers and the repository/auth
// utilities:
//
//	AuthHandler (HTTP) → AuthService (business rules) → UserRepository (store)
//	                   ↘ PasswordService (bcrypt) / TokenService (JWT)
//
// The handlers never hash a password or sign a token themselves, and this
// layer never reads an *http.Request — registration and login are plain
// function calls that any caller (HTTP, CLI, test) can make.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tanvir/jobtrackr/internal/apperror"
	"github.com/tanvir/jobtrackr/internal/auth"
	"github.com/tanvir/jobtrackr/internal/model"
	"github.com/tanvir/jobtrackr/internal/repository"
)

// AuthService handles registration and login.
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	tokens    *auth.TokenService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all dependencies injected.
func NewAuthService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	tokens *auth.TokenService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates a new user and returns its generated ID.
//
// Failure modes:
//   - empty username or password → apperror.ErrValidation
//   - username already taken     → apperror.ErrConflict
//
// The existence pre-check gives the common case a clean error; the unique
// index in the store catches the race where two registrations of the same
// username interleave, and the repository reports that as the same conflict.
func (s *AuthService) Register(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperror.ValidationFailed("username", "username and password are required")
	}

	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return "", apperror.Conflict("User already exists")
	case !errors.Is(err, apperror.ErrNotFound):
		return "", fmt.Errorf("service/auth: checking username %q: %w", username, err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return "", fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", fmt.Errorf("service/auth: creating user %q: %w", username, err)
	}

	s.logger.Info("user registered", slog.String("userID", user.ID), slog.String("username", username))

	return user.ID, nil
}

// Login verifies the credentials and returns a signed access token.
//
// An unknown username and a wrong password both come back as
// apperror.ErrCredentials with the same message — the response must not
// reveal which half was wrong. The bcrypt comparison runs in constant time.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperror.ValidationFailed("username", "username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.InvalidCredentials()
		}
		return "", fmt.Errorf("service/auth: looking up user %q: %w", username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return "", apperror.InvalidCredentials()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("service/auth: issuing token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return token, nil
}
