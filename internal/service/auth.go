package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/anpos/pos-client/internal/db/repository"
	"github.com/anpos/pos-client/internal/models"
)

var (
	// ErrInvalidCredentials is returned for an unknown username and for
	// a wrong password alike, so callers cannot tell which field failed
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrLoginFailed covers store errors during login; the underlying
	// cause is logged, never returned
	ErrLoginFailed = errors.New("login failed, please try again")
)

// AuthService handles operator authentication against the local store
type AuthService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(repos *repository.Repositories, logger *zap.Logger) *AuthService {
	return &AuthService{
		repos:  repos,
		logger: logger,
	}
}

// Login validates the credentials and stamps last_login on success.
// It returns only the sentinel errors above; raw store errors never
// reach the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repos.User.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return nil, ErrLoginFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.repos.User.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Error("failed to update last login", zap.Error(err))
		return nil, ErrLoginFailed
	}
	user.LastLogin = &now

	return user, nil
}
