package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexivanou/geotrip-api/internal/model"
	"github.com/jmoiron/sqlx"
)

// relationRepository stores (user_id, poi_id) pairs. Favorites and visited
// share this implementation and differ only by table.
type relationRepository struct {
	table string
}

func (r *relationRepository) Exists(ctx context.Context, q Querier, userID, poiID string) (bool, error) {
	var one int
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE user_id = ? AND poi_id = ?", r.table)
	if err := sqlx.GetContext(ctx, q, &one, q.Rebind(query), userID, poiID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to query %s: %w", r.table, err)
	}
	return true, nil
}

func (r *relationRepository) Add(ctx context.Context, q Querier, userID, poiID string) error {
	query := fmt.Sprintf("INSERT INTO %s (user_id, poi_id) VALUES (?, ?)", r.table)
	if _, err := exec(ctx, q, query, userID, poiID); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", r.table, err)
	}
	return nil
}

func (r *relationRepository) Remove(ctx context.Context, q Querier, userID, poiID string) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE user_id = ? AND poi_id = ?", r.table)
	n, err := exec(ctx, q, query, userID, poiID)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", r.table, err)
	}
	return n > 0, nil
}

// ListPois returns the pois related to the user, ordered by name.
func (r *relationRepository) ListPois(ctx context.Context, q Querier, userID string) ([]model.Poi, error) {
	query := fmt.Sprintf(`
		SELECT `+poiColumns+`
		FROM pois p
		JOIN %s rel ON rel.poi_id = p.id
		WHERE rel.user_id = ?
		ORDER BY p.name, p.id`, r.table)
	return pois.selectWhere(ctx, q, query, userID)
}
