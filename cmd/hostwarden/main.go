// Hostwarden is an authentication gateway and admin panel for a single host.
//
// It verifies credentials behind a device-fingerprint risk gate, issues
// device-bound session tokens, and serves host telemetry to the embedded
// admin page.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/avoronkov/hostwarden/migrations"

	"github.com/avoronkov/hostwarden/internal/api"
	"github.com/avoronkov/hostwarden/internal/auth"
	"github.com/avoronkov/hostwarden/internal/infrastructure/config"
	"github.com/avoronkov/hostwarden/internal/infrastructure/database"
	"github.com/avoronkov/hostwarden/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// defaultConfigPath is used when HOSTWARDEN_CONFIG is not set.
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the application logic, separated from main for testability.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting Hostwarden", "version", version, "commit", commit)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	log.Info("database migrations complete")

	store := auth.NewStore(db.DB)

	// Seed the admin account before accepting any traffic.
	if err := auth.EnsureAdmin(ctx, store, cfg.Admin.Login, cfg.Admin.Password, log.Logger); err != nil {
		return fmt.Errorf("seeding admin account: %w", err)
	}

	authService := auth.NewService(store, log.Logger)

	server, err := api.New(api.Deps{
		Config:  cfg.API,
		Logger:  log,
		Auth:    authService,
		DB:      db,
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses the HOSTWARDEN_CONFIG environment variable if set.
func getConfigPath() string {
	if path := os.Getenv("HOSTWARDEN_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
