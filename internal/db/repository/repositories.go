package repository

import (
	"github.com/anpos/pos-client/internal/db"
)

// Repositories provides access to all repository instances
type Repositories struct {
	User     *UserRepository
	Product  *ProductRepository
	Settings *SettingsRepository
	Sale     *SaleRepository
}

// NewRepositories creates a new repositories container
func NewRepositories(store *db.SQLite) *Repositories {
	return &Repositories{
		User:     NewUserRepository(store.DB),
		Product:  NewProductRepository(store.DB),
		Settings: NewSettingsRepository(store.DB),
		Sale:     NewSaleRepository(store.DB),
	}
}
