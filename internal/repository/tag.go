package repository

import (
	"context"
	"fmt"

	"github.com/alexivanou/geotrip-api/internal/model"
)

var (
	tags    = table[model.Tag]{name: "tags", columns: "id, name"}
	poiTags = table[model.PoiTag]{name: "poi_tags", columns: "poi_id, tag_id"}
)

type tagRepository struct {
	d dialect
}

func (r *tagRepository) Get(ctx context.Context, q Querier, id string) (model.Tag, bool, error) {
	return tags.get(ctx, q, id)
}

func (r *tagRepository) FindByName(ctx context.Context, q Querier, name string) (model.Tag, bool, error) {
	return tags.getWhere(ctx, q, "SELECT id, name FROM tags WHERE name = ?", name)
}

func (r *tagRepository) List(ctx context.Context, q Querier, f model.TagFilter) ([]model.Tag, error) {
	var w filter
	if f.Name != "" {
		w.add(r.d.nameMatch("name"), f.Name)
	}
	return tags.selectWhere(ctx, q, "SELECT id, name FROM tags"+w.where()+" ORDER BY name", w.args...)
}

func (r *tagRepository) Insert(ctx context.Context, q Querier, rows []model.Tag) error {
	return tags.insert(ctx, q, `INSERT INTO tags (id, name) VALUES (:id, :name)`, rows)
}

// Delete removes the tag and its poi links. Pois are left untouched.
func (r *tagRepository) Delete(ctx context.Context, q Querier, id string) error {
	if _, err := exec(ctx, q, "DELETE FROM poi_tags WHERE tag_id = ?", id); err != nil {
		return fmt.Errorf("failed to unlink tag: %w", err)
	}
	if _, err := exec(ctx, q, "DELETE FROM tags WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

func (r *tagRepository) Linked(ctx context.Context, q Querier, poiID, tagID string) (bool, error) {
	_, found, err := poiTags.getWhere(ctx, q,
		"SELECT poi_id, tag_id FROM poi_tags WHERE poi_id = ? AND tag_id = ?", poiID, tagID)
	return found, err
}

func (r *tagRepository) Link(ctx context.Context, q Querier, links []model.PoiTag) error {
	return poiTags.insert(ctx, q, `INSERT INTO poi_tags (poi_id, tag_id) VALUES (:poi_id, :tag_id)`, links)
}

func (r *tagRepository) Unlink(ctx context.Context, q Querier, poiID, tagID string) (bool, error) {
	n, err := exec(ctx, q, "DELETE FROM poi_tags WHERE poi_id = ? AND tag_id = ?", poiID, tagID)
	if err != nil {
		return false, fmt.Errorf("failed to unlink tag: %w", err)
	}
	return n > 0, nil
}

// TagsOfPoi returns the tags linked to a poi ordered by name.
func (r *tagRepository) TagsOfPoi(ctx context.Context, q Querier, poiID string) ([]model.Tag, error) {
	return tags.selectWhere(ctx, q, `
		SELECT t.id, t.name
		FROM tags t
		JOIN poi_tags pt ON pt.tag_id = t.id
		WHERE pt.poi_id = ?
		ORDER BY t.name`, poiID)
}
