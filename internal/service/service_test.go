package service

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/anpos/pos-client/internal/config"
	"github.com/anpos/pos-client/internal/db"
	"github.com/anpos/pos-client/internal/db/repository"
)

// newTestStore bootstraps a seeded store in a temp dir
func newTestStore(t *testing.T) *db.SQLite {
	t.Helper()

	cfg := config.Database{Path: filepath.Join(t.TempDir(), "test.db")}
	authCfg := config.Auth{BcryptCost: bcrypt.MinCost, DefaultAdminPassword: "1"}

	store, err := db.Initialize(context.Background(), cfg, authCfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// newTestRepos wraps newTestStore for tests that only need repositories
func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	return repository.NewRepositories(newTestStore(t))
}

// newEmptyRepos migrates the schema but seeds nothing
func newEmptyRepos(t *testing.T) *repository.Repositories {
	t.Helper()

	store, err := db.NewSQLite(config.Database{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	return repository.NewRepositories(store)
}
