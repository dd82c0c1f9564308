package db

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/anpos/pos-client/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLite is the embedded store. All local state (users, products,
// sales, settings) lives here; cart state does not, see the bridge
// package.
type SQLite struct {
	DB *sqlx.DB
}

// NewSQLite opens (creating if needed) the database file and switches
// it to WAL mode
func NewSQLite(cfg config.Database) (*SQLite, error) {
	db, err := sqlx.Connect("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("could not open database %s: %w", cfg.Path, err)
	}

	// A single connection serialises all statements, which matches the
	// single-logical-thread access model and keeps in-memory databases
	// on one schema. WAL still lets external readers in.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("could not enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return nil, fmt.Errorf("could not enable foreign keys: %w", err)
	}

	// Verify connection is working
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("could not ping database: %w", err)
	}

	return &SQLite{DB: db}, nil
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.DB.Close()
}

// Migrate applies the embedded schema migrations. Every statement is
// CREATE ... IF NOT EXISTS, so running against a database created by
// an older build is safe.
func (s *SQLite) Migrate() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(s.DB.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to initialize migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// HealthCheck performs a database health check
func (s *SQLite) HealthCheck(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}
