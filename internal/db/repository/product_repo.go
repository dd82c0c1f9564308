package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/anpos/pos-client/internal/models"
)

// ProductRepository handles product data access
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Every text column in products is nullable (the table mirrors a
// spreadsheet import), so selects coalesce them to '' to scan into the
// model's plain string fields.
const productColumns = `
	COALESCE(Barcode, '') AS Barcode, COALESCE(Item_name, '') AS Item_name,
	COALESCE(Category, '') AS Category, COALESCE(Unit, '') AS Unit,
	Bulk_unit, Bulk_code, Bulk_single_conversion, Retail_price,
	Bulk_price, Cost`

// SearchLike runs the primary substring search over barcode and item
// name. SQLite's LIKE is case-insensitive for ASCII, which is all this
// phase promises; accent folding happens in the service fallback.
func (r *ProductRepository) SearchLike(ctx context.Context, term string, limit int) ([]models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE Barcode LIKE ? OR Item_name LIKE ?
		ORDER BY Item_name COLLATE NOCASE
		LIMIT ?
	`

	pattern := "%" + term + "%"

	var products []models.Product
	err := r.db.SelectContext(ctx, &products, query, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}

// List retrieves up to limit product rows
func (r *ProductRepository) List(ctx context.Context, limit int) ([]models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		LIMIT ?
	`

	var products []models.Product
	err := r.db.SelectContext(ctx, &products, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// GetByBarcode retrieves every product carrying the barcode. The schema
// does not make barcodes unique, so callers get a slice.
func (r *ProductRepository) GetByBarcode(ctx context.Context, barcode string) ([]models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE Barcode = ?
	`

	var products []models.Product
	err := r.db.SelectContext(ctx, &products, query, barcode)
	if err != nil {
		return nil, fmt.Errorf("failed to get products by barcode: %w", err)
	}

	return products, nil
}

// Create inserts a product row
func (r *ProductRepository) Create(ctx context.Context, p models.Product) error {
	query := `
		INSERT INTO products (Barcode, Item_name, Category, Unit, Bulk_unit, Bulk_code,
		                      Bulk_single_conversion, Retail_price, Bulk_price, Cost)
		VALUES (:Barcode, :Item_name, :Category, :Unit, :Bulk_unit, :Bulk_code,
		        :Bulk_single_conversion, :Retail_price, :Bulk_price, :Cost)
	`

	_, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}
