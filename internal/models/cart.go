package models

import (
	"time"
)

// PriceType distinguishes retail-unit and bulk-unit pricing on a line
type PriceType string

const (
	PriceTypeSingle PriceType = "single"
	PriceTypeBulk   PriceType = "bulk"
)

// CartLine mirrors the local cart table. The table is part of the
// declared schema but no code path in this process writes it; live
// cart state is owned by the remote cart backend.
type CartLine struct {
	ID             string     `db:"id" json:"id"`
	UserID         string     `db:"user_id" json:"user_id"`
	ProductBarcode string     `db:"product_barcode" json:"product_barcode"`
	ProductName    string     `db:"product_name" json:"product_name"`
	PriceType      PriceType  `db:"price_type" json:"price_type"`
	UnitPrice      float64    `db:"unit_price" json:"unit_price"`
	Unit           string     `db:"unit" json:"unit"`
	Quantity       int        `db:"quantity" json:"quantity"`
	Total          float64    `db:"total" json:"total"`
	CreatedAt      *time.Time `db:"created_at" json:"created_at"`
}

// Cart is the remote backend's view of a cart. Field names follow the
// backend's wire format.
type Cart struct {
	CartID   int64  `json:"cart_id"`
	CartName string `json:"cart_name"`
	Status   string `json:"status"`
	AddedAt  string `json:"added_at"`
}

// CartItem is a line held by the remote backend for a cart
type CartItem struct {
	CartID         int64   `json:"cart_id"`
	ProductID      int64   `json:"product_id"`
	ScannedBarcode *string `json:"scanned_barcode"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
	PurchasingType string  `json:"purchasing_type"`
	Discount       float64 `json:"discount"`
}
