package repository

import (
	"context"
	"fmt"

	"github.com/alexivanou/geotrip-api/internal/model"
)

var countries = table[model.Country]{name: "countries", columns: "id, name, img"}

type countryRepository struct {
	d dialect
}

func (r *countryRepository) Get(ctx context.Context, q Querier, id string) (model.Country, bool, error) {
	return countries.get(ctx, q, id)
}

func (r *countryRepository) List(ctx context.Context, q Querier, f model.CountryFilter) ([]model.Country, error) {
	var w filter
	if f.Name != "" {
		w.add(r.d.nameMatch("name"), f.Name)
	}
	return countries.selectWhere(ctx, q, "SELECT id, name, img FROM countries"+w.where()+" ORDER BY name, id", w.args...)
}

func (r *countryRepository) Insert(ctx context.Context, q Querier, rows []model.Country) error {
	return countries.insert(ctx, q, `INSERT INTO countries (id, name, img) VALUES (:id, :name, :img)`, rows)
}

func (r *countryRepository) Update(ctx context.Context, q Querier, c model.Country) error {
	return countries.update(ctx, q, `UPDATE countries SET name = :name, img = :img WHERE id = :id`, c)
}

// Delete removes the country and its whole subtree: cities, their pois and
// everything attached to those pois.
func (r *countryRepository) Delete(ctx context.Context, q Querier, id string) error {
	if err := deletePois(ctx, q, poisOfCountry, id); err != nil {
		return err
	}
	if _, err := exec(ctx, q, "DELETE FROM cities WHERE country_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete cities of country: %w", err)
	}
	if _, err := exec(ctx, q, "DELETE FROM countries WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete country: %w", err)
	}
	return nil
}
