package models

import (
	"time"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentQR   PaymentMethod = "qr"
)

// SaleStatus represents the lifecycle state of a recorded sale
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusPending   SaleStatus = "pending"
)

// Sale represents a finalized checkout written back by the cart flow
type Sale struct {
	ID            string        `db:"id" json:"id"`
	LocalID       string        `db:"local_id" json:"local_id"`
	Date          time.Time     `db:"date" json:"date"`
	Operator      string        `db:"operator" json:"operator"`
	Subtotal      float64       `db:"subtotal" json:"subtotal"`
	VATRate       float64       `db:"vat_rate" json:"vat_rate"`
	VATAmount     float64       `db:"vat_amount" json:"vat_amount"`
	Discount      float64       `db:"discount" json:"discount"`
	Total         float64       `db:"total" json:"total"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"payment_method"`
	Status        SaleStatus    `db:"status" json:"status"`
	Synced        bool          `db:"synced" json:"synced"`
	CreatedAt     *time.Time    `db:"created_at" json:"created_at"`

	// Not stored directly in the sales table
	Items []SaleItem `db:"-" json:"items,omitempty"`
}

// SaleItem represents a single line of a sale
type SaleItem struct {
	ID             string  `db:"id" json:"id"`
	SaleID         string  `db:"sale_id" json:"sale_id"`
	ProductID      string  `db:"product_id" json:"product_id"`
	ProductName    string  `db:"product_name" json:"product_name"`
	ProductBarcode string  `db:"product_barcode" json:"product_barcode"`
	Quantity       int     `db:"quantity" json:"quantity"`
	PriceType      string  `db:"price_type" json:"price_type"`
	UnitPrice      float64 `db:"unit_price" json:"unit_price"`
	Discount       float64 `db:"discount" json:"discount"`
	Total          float64 `db:"total" json:"total"`
}
