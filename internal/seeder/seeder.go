package seeder

import (
	"context"
	"fmt"

	"github.com/alexivanou/geotrip-api/internal/model"
	"go.uber.org/zap"
)

// Importer writes a parsed catalog atomically.
type Importer interface {
	ImportCatalog(ctx context.Context, cat model.Catalog) (model.ImportSummary, error)
}

// Seeder loads catalog files into the store.
type Seeder struct {
	importer Importer
	logger   *zap.Logger
}

func New(importer Importer, logger *zap.Logger) *Seeder {
	return &Seeder{importer: importer, logger: logger}
}

// SeedFile parses path and imports it in one transaction.
func (s *Seeder) SeedFile(ctx context.Context, path string) (model.ImportSummary, error) {
	s.logger.Info("Parsing catalog...", zap.String("file", path))
	cat, err := ParseCatalog(path)
	if err != nil {
		return model.ImportSummary{}, err
	}

	s.logger.Info("Importing catalog...", zap.Int("countries", len(cat.Countries)))
	summary, err := s.importer.ImportCatalog(ctx, cat)
	if err != nil {
		return model.ImportSummary{}, fmt.Errorf("failed to import %s: %w", path, err)
	}
	return summary, nil
}
