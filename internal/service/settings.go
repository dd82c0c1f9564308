package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/anpos/pos-client/internal/db/repository"
	"github.com/anpos/pos-client/internal/models"
)

// DefaultVATRate applies when no settings row exists yet
const DefaultVATRate = 0.10

// SettingsService reads shop configuration from the local store
type SettingsService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(repos *repository.Repositories, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		repos:  repos,
		logger: logger,
	}
}

// VATRate returns the configured VAT rate, or DefaultVATRate when the
// settings row is missing or unreadable. Failures are logged only.
func (s *SettingsService) VATRate(ctx context.Context) float64 {
	rate, err := s.repos.Settings.GetVATRate(ctx)
	if err != nil {
		s.logger.Warn("falling back to default vat rate", zap.Error(err))
		return DefaultVATRate
	}

	return rate
}

// Settings returns the full settings row
func (s *SettingsService) Settings(ctx context.Context) (*models.Settings, error) {
	return s.repos.Settings.Get(ctx)
}
