package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

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
	format := flag.String("format", os.Getenv("OUTPUT_FORMAT"), "Output format: json or text")
	seed := flag.Bool("seed", false, "Import SEED_FILE first (memory databases only)")
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

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.DB.IsMemory() {
		if err := database.Migrate(db, cfg.DB, cfg.Store.MigrationsPath); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		if *seed {
			svc := service.NewService(
				repository.NewRepositories(db, cfg.DB.Type),
				auth.NewHasher(cfg.Auth.BcryptCost),
				auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
				logger,
				cfg.Store.Timeout,
			)
			if _, err := seeder.New(svc, logger).SeedFile(ctx, cfg.Store.SeedFile); err != nil {
				logger.Fatal("Failed to import catalog", zap.Error(err))
			}
		}
	} else if *seed {
		logger.Warn("Ignoring -seed for a persistent database; use cmd/seeder")
	}

	statistics, err := stats.NewCollector(db, cfg.DB).Collect(ctx)
	if err != nil {
		logger.Fatal("Failed to collect statistics", zap.Error(err))
	}

	switch strings.ToLower(*format) {
	case "", "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(statistics)
	case "text":
		err = writeReport(os.Stdout, statistics)
	default:
		logger.Fatal("Unknown output format", zap.String("format", *format))
	}
	if err != nil {
		logger.Fatal("Failed to write statistics", zap.Error(err))
	}
}

// writeReport prints the catalog counts first, then storage and process figures.
func writeReport(out io.Writer, s *stats.Stats) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "collected\t%s\n", s.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "database\t%s (%s, %d/%d connections busy)\n",
		s.Database.Type, humanBytes(s.Database.SizeBytes), s.Database.InUse, s.Database.OpenConnections)
	fmt.Fprintln(w)

	for _, t := range s.Database.TableStats {
		fmt.Fprintf(w, "%s\t%d\n", t.Name, t.RowCount)
	}
	fmt.Fprintf(w, "total\t%d\n", s.Database.TotalRecords)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "heap\t%s in use\n", humanBytes(int64(s.Memory.HeapInuse)))
	fmt.Fprintf(w, "goroutines\t%d\n", s.Runtime.NumGoroutines)
	fmt.Fprintf(w, "uptime\t%ds\n", s.Runtime.UptimeSeconds)

	return w.Flush()
}

func humanBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n)
	for _, suffix := range []string{"KiB", "MiB", "GiB"} {
		v /= 1024
		if v < 1024 {
			return fmt.Sprintf("%.1f %s", v, suffix)
		}
	}
	return fmt.Sprintf("%.1f TiB", v/1024)
}
