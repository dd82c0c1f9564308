package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/anpos/pos-client/internal/models"
)

// SettingsRepository handles shop settings data access
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retrieves the settings row. A single row is assumed; the first
// one wins.
func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	query := `
		SELECT id, shop_name, vat_rate, default_printer, offline_mode, sync_interval, qr_expiry, updated_at
		FROM settings
		LIMIT 1
	`

	var settings models.Settings
	err := r.db.GetContext(ctx, &settings, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return &settings, nil
}

// GetVATRate retrieves just the configured VAT rate
func (r *SettingsRepository) GetVATRate(ctx context.Context) (float64, error) {
	var rate float64
	err := r.db.GetContext(ctx, &rate, "SELECT vat_rate FROM settings LIMIT 1")
	if err != nil {
		return 0, fmt.Errorf("failed to get vat rate: %w", err)
	}

	return rate, nil
}
