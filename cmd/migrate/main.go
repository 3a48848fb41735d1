package main

import (
	"errors"
	"flag"
	"log"
	"path/filepath"

	"github.com/alexivanou/geotrip-api/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Memory databases vanish with the process and are migrated by the app on
// startup, so this command targets PostgreSQL only.
func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, steps, force, or version")
		steps   = flag.Int("n", 1, "Step count for steps (negative rolls back) or target version for force")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if cfg.DB.IsMemory() {
		logger.Fatal("Migrate command requires DB_TYPE=postgres")
	}

	sourceURL := "file://" + filepath.ToSlash(filepath.Join(cfg.Store.MigrationsPath, "postgres"))
	m, err := migrate.New(sourceURL, cfg.DB.DSN())
	if err != nil {
		logger.Fatal("Failed to create migration instance", zap.Error(err))
	}
	defer m.Close()

	switch *command {
	case "up":
		logger.Info("Running migrations UP")
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("Migration up failed", zap.Error(err))
		}
	case "down":
		logger.Info("Running migrations DOWN")
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("Migration down failed", zap.Error(err))
		}
	case "steps":
		logger.Info("Running migration steps", zap.Int("n", *steps))
		if err := m.Steps(*steps); err != nil {
			logger.Fatal("Migration steps failed", zap.Error(err))
		}
	case "force":
		// Clears the dirty flag after a failed migration was fixed by hand
		logger.Warn("Forcing migration version", zap.Int("version", *steps))
		if err := m.Force(*steps); err != nil {
			logger.Fatal("Migration force failed", zap.Error(err))
		}
	case "version":
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("No migrations applied yet")
			return
		}
		if err != nil {
			logger.Fatal("Failed to get version", zap.Error(err))
		}
		logger.Info("Migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	default:
		logger.Fatal("Unknown command", zap.String("command", *command))
	}

	logger.Info("Migration command completed successfully")
}
