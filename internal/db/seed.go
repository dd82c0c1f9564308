package db

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/anpos/pos-client/internal/config"
)

// sampleProducts are inserted once into an empty products table so a
// fresh install has something to sell
var sampleProducts = [][]interface{}{
	{"1234567890123", "Coca Cola", "Beverages", "Can", "Pack", "1234567890124", 6.0, 2.50, 12.00, 1.80},
	{"1234567890125", "Pepsi", "Beverages", "Can", "Pack", "1234567890126", 6.0, 2.25, 11.00, 1.60},
	{"1234567890127", "Chips", "Snacks", "Pack", "Box", "1234567890128", 12.0, 1.75, 18.00, 1.20},
}

// Seed inserts the default admin user, sample products and the default
// settings row, each only when its table is empty. Calling it again is
// a no-op.
func (s *SQLite) Seed(ctx context.Context, cfg config.Auth, logger *zap.Logger) error {
	var userCount int
	if err := s.DB.GetContext(ctx, &userCount, "SELECT COUNT(*) FROM users"); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultAdminPassword), cfg.BcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		adminID := fmt.Sprintf("admin_%d", time.Now().UnixMilli())
		_, err = s.DB.ExecContext(ctx,
			"INSERT INTO users (id, username, password, role) VALUES (?, ?, ?, ?)",
			adminID, "admin", string(hash), "admin",
		)
		if err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		logger.Info("seeded admin user", zap.String("id", adminID))
	}

	var productCount int
	if err := s.DB.GetContext(ctx, &productCount, "SELECT COUNT(*) FROM products"); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	if productCount == 0 {
		query := `
			INSERT INTO products (Barcode, Item_name, Category, Unit, Bulk_unit, Bulk_code, Bulk_single_conversion, Retail_price, Bulk_price, Cost)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		for _, p := range sampleProducts {
			if _, err := s.DB.ExecContext(ctx, query, p...); err != nil {
				return fmt.Errorf("failed to insert sample product: %w", err)
			}
		}
		logger.Info("seeded sample products", zap.Int("count", len(sampleProducts)))
	}

	var settingsCount int
	if err := s.DB.GetContext(ctx, &settingsCount, "SELECT COUNT(*) FROM settings"); err != nil {
		return fmt.Errorf("failed to count settings: %w", err)
	}

	if settingsCount == 0 {
		settingsID := fmt.Sprintf("default_%d", time.Now().UnixMilli())
		_, err := s.DB.ExecContext(ctx,
			"INSERT INTO settings (id, shop_name, vat_rate, default_printer, offline_mode, sync_interval, qr_expiry) VALUES (?, ?, ?, ?, ?, ?, ?)",
			settingsID, "AnPOS Shop", 0.10, "Default Printer", true, 300, 300,
		)
		if err != nil {
			return fmt.Errorf("failed to insert default settings: %w", err)
		}
		logger.Info("seeded default settings", zap.String("id", settingsID))
	}

	return nil
}

// Initialize opens the store, applies migrations and seeds defaults.
// Any failure aborts initialization and surfaces to the caller.
func Initialize(ctx context.Context, dbCfg config.Database, authCfg config.Auth, logger *zap.Logger) (*SQLite, error) {
	store, err := NewSQLite(dbCfg)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, err
	}

	if err := store.Seed(ctx, authCfg, logger); err != nil {
		store.Close()
		return nil, err
	}

	return store, nil
}
