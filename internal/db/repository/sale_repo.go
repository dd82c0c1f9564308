package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/anpos/pos-client/internal/models"
)

// SaleRepository handles recorded sale data access. Sales are written
// by the checkout flow after the cart backend confirms payment.
type SaleRepository struct {
	db *sqlx.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *sqlx.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create inserts a sale and its items in one transaction. Missing ids
// are filled with generated UUIDs.
func (r *SaleRepository) Create(ctx context.Context, sale models.Sale) (*models.Sale, error) {
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	saleQuery := `
		INSERT INTO sales (id, local_id, date, operator, subtotal, vat_rate, vat_amount, discount, total, payment_method, status, synced)
		VALUES (:id, :local_id, :date, :operator, :subtotal, :vat_rate, :vat_amount, :discount, :total, :payment_method, :status, :synced)
	`

	if _, err := tx.NamedExecContext(ctx, saleQuery, sale); err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (id, sale_id, product_id, product_name, product_barcode, quantity, price_type, unit_price, discount, total)
		VALUES (:id, :sale_id, :product_id, :product_name, :product_barcode, :quantity, :price_type, :unit_price, :discount, :total)
	`

	for i := range sale.Items {
		item := &sale.Items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.SaleID = sale.ID

		if _, err := tx.NamedExecContext(ctx, itemQuery, item); err != nil {
			return nil, fmt.Errorf("failed to create sale item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale: %w", err)
	}

	return &sale, nil
}

// GetByLocalID retrieves a sale and its items by the terminal-local id
func (r *SaleRepository) GetByLocalID(ctx context.Context, localID string) (*models.Sale, error) {
	query := `
		SELECT id, local_id, date, operator, subtotal, vat_rate, vat_amount, discount, total, payment_method, status, synced, created_at
		FROM sales
		WHERE local_id = ?
	`

	var sale models.Sale
	if err := r.db.GetContext(ctx, &sale, query, localID); err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	itemQuery := `
		SELECT id, sale_id, product_id, product_name, product_barcode, quantity, price_type, unit_price, discount, total
		FROM sale_items
		WHERE sale_id = ?
	`

	if err := r.db.SelectContext(ctx, &sale.Items, itemQuery, sale.ID); err != nil {
		return nil, fmt.Errorf("failed to get sale items: %w", err)
	}

	return &sale, nil
}

// ListRecent retrieves the most recent sales, newest first
func (r *SaleRepository) ListRecent(ctx context.Context, limit int) ([]models.Sale, error) {
	query := `
		SELECT id, local_id, date, operator, subtotal, vat_rate, vat_amount, discount, total, payment_method, status, synced, created_at
		FROM sales
		ORDER BY date DESC
		LIMIT ?
	`

	var sales []models.Sale
	if err := r.db.SelectContext(ctx, &sales, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	return sales, nil
}
