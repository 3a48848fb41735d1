package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexivanou/geotrip-api/internal/api"
	"github.com/alexivanou/geotrip-api/internal/auth"
	"github.com/alexivanou/geotrip-api/internal/config"
	"github.com/alexivanou/geotrip-api/internal/database"
	"github.com/alexivanou/geotrip-api/internal/repository"
	"github.com/alexivanou/geotrip-api/internal/seeder"
	"github.com/alexivanou/geotrip-api/internal/service"
	"github.com/alexivanou/geotrip-api/internal/stats"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(context.Background(), cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	if err := database.Migrate(db, cfg.DB, cfg.Store.MigrationsPath); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repos := repository.NewRepositories(db, cfg.DB.Type)
	svc := service.NewService(
		repos,
		auth.NewHasher(cfg.Auth.BcryptCost),
		auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		logger,
		cfg.Store.Timeout,
	)

	ctx := context.Background()
	isEmpty, err := repository.IsDatabaseEmpty(ctx, db)
	if err != nil {
		logger.Warn("Failed to check if database is empty", zap.Error(err))
	} else if isEmpty {
		autoSeed(ctx, svc, cfg.Store.SeedFile, logger)
	}

	statsCollector := stats.NewCollector(db, cfg.DB)
	router := api.NewRouter(svc, statsCollector, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// autoSeed loads the bundled catalog into an empty database. A missing file
// is not fatal.
func autoSeed(ctx context.Context, svc *service.Service, path string, logger *zap.Logger) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Info("No seed file, starting with an empty catalog", zap.String("file", path))
		return
	}

	logger.Info("Database is empty, auto-seeding data...")
	summary, err := seeder.New(svc, logger).SeedFile(ctx, path)
	if err != nil {
		logger.Fatal("Failed to auto-seed database", zap.Error(err))
	}
	logger.Info("Database seeded successfully",
		zap.Int("countries", summary.Countries),
		zap.Int("pois", summary.Pois),
	)
}
