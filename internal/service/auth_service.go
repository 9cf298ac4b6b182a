package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/zentharo/request-service/internal/auth"
	"github.com/zentharo/request-service/internal/config"
	"github.com/zentharo/request-service/internal/domain"
	"github.com/zentharo/request-service/internal/repository"
	"github.com/zentharo/request-service/pkg/apperrors"
)

// AuthService coordinates registration, login and account self-updates.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account and signs the caller in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", apperrors.NewValidationError("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, _, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates a user by email and password. Unknown email and wrong
// password produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", apperrors.NewUnauthorized("invalid credentials")
	}
	token, _, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UpdateName changes the caller's display name.
func (s *AuthService) UpdateName(ctx context.Context, userID, name string) (*domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(name)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewValidationError("new password required", nil)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewValidationError("current password is incorrect", nil)
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
