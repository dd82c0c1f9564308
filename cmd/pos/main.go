package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/anpos/pos-client/internal/bridge"
	"github.com/anpos/pos-client/internal/config"
	"github.com/anpos/pos-client/internal/db"
	"github.com/anpos/pos-client/internal/db/repository"
	"github.com/anpos/pos-client/internal/service"
	"github.com/anpos/pos-client/internal/session"
)

// App bundles everything the UI layer needs, the explicit alternative
// to package-level globals
type App struct {
	Auth     *service.AuthService
	Search   *service.SearchService
	Settings *service.SettingsService
	Sessions *session.Manager
	Carts    *bridge.Client
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Open, migrate and seed the local store
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := db.Initialize(ctx, cfg.Database, cfg.Auth, logger)
	cancel()
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer store.Close()

	// Wire repositories and services
	repos := repository.NewRepositories(store)

	// Session manager with file-backed username memory
	sessions := session.NewManager(
		time.Duration(cfg.Session.TimeoutMinutes)*time.Minute,
		session.NewFileStorage(cfg.Session.StorageDir),
		logger,
	)
	sessions.OnExpire(func() {
		logger.Info("session expired, returning to login screen")
	})

	// Connect to the cart backend
	carts, err := bridge.Dial(cfg.Bridge, logger)
	if err != nil {
		logger.Fatal("failed to connect to cart backend", zap.Error(err))
	}
	defer carts.Close()

	app := &App{
		Auth:     service.NewAuthService(repos, logger),
		Search:   service.NewSearchService(repos, logger),
		Settings: service.NewSettingsService(repos, logger),
		Sessions: sessions,
		Carts:    carts,
	}

	logger.Info("pos client ready",
		zap.String("db", cfg.Database.Path),
		zap.String("cart_backend", cfg.Bridge.URL),
		zap.String("last_username", app.Sessions.LastUsername()),
		zap.Float64("vat_rate", app.Settings.VATRate(context.Background())),
	)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	app.Sessions.Logout()
}
