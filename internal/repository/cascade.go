package repository

import (
	"context"
	"fmt"
)

// Selectors for the set of pois removed by a cascading delete. Each one binds
// exactly one placeholder.
const (
	poisOfCountry = `SELECT p.id FROM pois p JOIN cities c ON c.id = p.city_id WHERE c.country_id = ?`
	poisOfCity    = `SELECT id FROM pois WHERE city_id = ?`
	poiByID       = `SELECT id FROM pois WHERE id = ?`
)

// deletePois removes the pois picked by selector together with every row that
// references them: user relations, tag links and images. Callers run it inside
// the same transaction as the parent's own delete.
func deletePois(ctx context.Context, q Querier, selector, arg string) error {
	statements := []string{
		"DELETE FROM favorites WHERE poi_id IN (" + selector + ")",
		"DELETE FROM visited WHERE poi_id IN (" + selector + ")",
		"DELETE FROM poi_tags WHERE poi_id IN (" + selector + ")",
		"DELETE FROM poi_images WHERE poi_id IN (" + selector + ")",
		"DELETE FROM pois WHERE id IN (" + selector + ")",
	}
	for _, stmt := range statements {
		if _, err := exec(ctx, q, stmt, arg); err != nil {
			return fmt.Errorf("failed to cascade delete: %w", err)
		}
	}
	return nil
}
