package models

import (
	"time"
)

// Settings holds the shop configuration row. A single active row is
// assumed; readers take the first one.
type Settings struct {
	ID             string     `db:"id" json:"id"`
	ShopName       string     `db:"shop_name" json:"shop_name"`
	VATRate        float64    `db:"vat_rate" json:"vat_rate"`
	DefaultPrinter string     `db:"default_printer" json:"default_printer"`
	OfflineMode    bool       `db:"offline_mode" json:"offline_mode"`
	SyncInterval   int        `db:"sync_interval" json:"sync_interval"`
	QRExpiry       int        `db:"qr_expiry" json:"qr_expiry"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updated_at"`
}
