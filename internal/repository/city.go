package repository

import (
	"context"
	"fmt"

	"github.com/alexivanou/geotrip-api/internal/model"
)

const cityColumns = "id, name, img, climate, country_id"

var cities = table[model.City]{name: "cities", columns: cityColumns}

type cityRepository struct {
	d dialect
}

func (r *cityRepository) Get(ctx context.Context, q Querier, id string) (model.City, bool, error) {
	return cities.get(ctx, q, id)
}

func (r *cityRepository) FindByName(ctx context.Context, q Querier, name, countryID string) (model.City, bool, error) {
	return cities.getWhere(ctx, q,
		"SELECT "+cityColumns+" FROM cities WHERE name = ? AND country_id = ?", name, countryID)
}

func (r *cityRepository) List(ctx context.Context, q Querier, f model.CityFilter) ([]model.City, error) {
	var w filter
	if f.Name != "" {
		w.add(r.d.nameMatch("name"), f.Name)
	}
	if f.CountryID != "" {
		w.add("country_id = ?", f.CountryID)
	}
	return cities.selectWhere(ctx, q, "SELECT "+cityColumns+" FROM cities"+w.where()+" ORDER BY name, id", w.args...)
}

func (r *cityRepository) Insert(ctx context.Context, q Querier, rows []model.City) error {
	return cities.insert(ctx, q, `
		INSERT INTO cities (id, name, img, climate, country_id)
		VALUES (:id, :name, :img, :climate, :country_id)`, rows)
}

func (r *cityRepository) Update(ctx context.Context, q Querier, c model.City) error {
	return cities.update(ctx, q, `
		UPDATE cities
		SET name = :name, img = :img, climate = :climate, country_id = :country_id
		WHERE id = :id`, c)
}

// Delete removes the city, its pois and everything attached to those pois.
func (r *cityRepository) Delete(ctx context.Context, q Querier, id string) error {
	if err := deletePois(ctx, q, poisOfCity, id); err != nil {
		return err
	}
	if _, err := exec(ctx, q, "DELETE FROM cities WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete city: %w", err)
	}
	return nil
}
