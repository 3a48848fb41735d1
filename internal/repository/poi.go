package repository

import (
	"context"
	"fmt"

	"github.com/alexivanou/geotrip-api/internal/model"
)

const poiColumns = "p.id, p.name, p.description, p.latitude, p.longitude, p.img, p.city_id"

var pois = table[model.Poi]{name: "pois", columns: "id, name, description, latitude, longitude, img, city_id"}

type poiRepository struct {
	d dialect
}

func (r *poiRepository) Get(ctx context.Context, q Querier, id string) (model.Poi, bool, error) {
	return pois.get(ctx, q, id)
}

func (r *poiRepository) FindByName(ctx context.Context, q Querier, name, cityID string) (model.Poi, bool, error) {
	return pois.getWhere(ctx, q,
		"SELECT "+poiColumns+" FROM pois p WHERE p.name = ? AND p.city_id = ?", name, cityID)
}

func (r *poiRepository) List(ctx context.Context, q Querier, f model.PoiFilter) ([]model.Poi, error) {
	var w filter
	if f.Name != "" {
		w.add(r.d.nameMatch("p.name"), f.Name)
	}
	if f.CityID != "" {
		w.add("p.city_id = ?", f.CityID)
	}
	if f.CountryID != "" {
		w.add("p.city_id IN (SELECT id FROM cities WHERE country_id = ?)", f.CountryID)
	}
	if f.TagID != "" {
		w.add("EXISTS (SELECT 1 FROM poi_tags pt WHERE pt.poi_id = p.id AND pt.tag_id = ?)", f.TagID)
	}
	return pois.selectWhere(ctx, q, "SELECT "+poiColumns+" FROM pois p"+w.where()+" ORDER BY p.name, p.id", w.args...)
}

// Random returns up to limit pois in random order. RANDOM() exists in both
// PostgreSQL and SQLite.
func (r *poiRepository) Random(ctx context.Context, q Querier, limit int) ([]model.Poi, error) {
	return pois.selectWhere(ctx, q, "SELECT "+poiColumns+" FROM pois p ORDER BY RANDOM() LIMIT ?", limit)
}

func (r *poiRepository) Insert(ctx context.Context, q Querier, rows []model.Poi) error {
	return pois.insert(ctx, q, `
		INSERT INTO pois (id, name, description, latitude, longitude, img, city_id)
		VALUES (:id, :name, :description, :latitude, :longitude, :img, :city_id)`, rows)
}

func (r *poiRepository) Update(ctx context.Context, q Querier, p model.Poi) error {
	return pois.update(ctx, q, `
		UPDATE pois
		SET name = :name, description = :description, latitude = :latitude,
			longitude = :longitude, img = :img, city_id = :city_id
		WHERE id = :id`, p)
}

// Delete removes the poi with its images, tag links and user relations.
func (r *poiRepository) Delete(ctx context.Context, q Querier, id string) error {
	if err := deletePois(ctx, q, poiByID, id); err != nil {
		return fmt.Errorf("failed to delete poi: %w", err)
	}
	return nil
}

var poiImages = table[model.PoiImage]{name: "poi_images", columns: "id, url, poi_id"}

type poiImageRepository struct{}

func (r *poiImageRepository) Get(ctx context.Context, q Querier, id string) (model.PoiImage, bool, error) {
	return poiImages.get(ctx, q, id)
}

func (r *poiImageRepository) ListByPoi(ctx context.Context, q Querier, poiID string) ([]model.PoiImage, error) {
	return poiImages.selectWhere(ctx, q, "SELECT id, url, poi_id FROM poi_images WHERE poi_id = ? ORDER BY url, id", poiID)
}

func (r *poiImageRepository) Insert(ctx context.Context, q Querier, rows []model.PoiImage) error {
	return poiImages.insert(ctx, q, `INSERT INTO poi_images (id, url, poi_id) VALUES (:id, :url, :poi_id)`, rows)
}

func (r *poiImageRepository) Delete(ctx context.Context, q Querier, id string) error {
	if _, err := exec(ctx, q, "DELETE FROM poi_images WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete poi image: %w", err)
	}
	return nil
}
