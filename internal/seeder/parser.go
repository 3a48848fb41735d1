package seeder

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexivanou/geotrip-api/internal/model"
)

// ParseCatalog reads a nested catalog document. The file may be plain JSON or
// a zip archive holding a single .json entry.
func ParseCatalog(path string) (model.Catalog, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return parseCatalogFromZip(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return parseCatalogFromReader(file)
}

func parseCatalogFromZip(zipPath string) (model.Catalog, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, ".json") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return model.Catalog{}, fmt.Errorf("failed to open file in zip: %w", err)
		}
		defer rc.Close()
		return parseCatalogFromReader(rc)
	}

	return model.Catalog{}, fmt.Errorf("no json file found in zip")
}

func parseCatalogFromReader(reader io.Reader) (model.Catalog, error) {
	var cat model.Catalog
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cat); err != nil {
		return model.Catalog{}, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return cat, nil
}
