package main

import (
	"context"
	"flag"
	"log"

	"github.com/alexivanou/geotrip-api/internal/auth"
	"github.com/alexivanou/geotrip-api/internal/config"
	"github.com/alexivanou/geotrip-api/internal/database"
	"github.com/alexivanou/geotrip-api/internal/repository"
	"github.com/alexivanou/geotrip-api/internal/seeder"
	"github.com/alexivanou/geotrip-api/internal/service"
	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "", "Catalog file (.json or .zip); defaults to SEED_FILE")
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
	if *file == "" {
		*file = cfg.Store.SeedFile
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	// Memory databases start without a schema
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

	summary, err := seeder.New(svc, logger).SeedFile(ctx, *file)
	if err != nil {
		logger.Fatal("Failed to import catalog", zap.Error(err))
	}

	logger.Info("Data import completed successfully!",
		zap.Int("countries", summary.Countries),
		zap.Int("cities", summary.Cities),
		zap.Int("pois", summary.Pois),
		zap.Int("images", summary.Images),
		zap.Int("tags", summary.Tags),
		zap.Int("links", summary.Links),
	)
}
