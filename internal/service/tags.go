package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexivanou/geotrip-api/internal/apperr"
	"github.com/alexivanou/geotrip-api/internal/model"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// CreateTags inserts tags whose names are globally unique.
func (s *Service) CreateTags(ctx context.Context, in []model.TagInput) ([]model.Tag, error) {
	if len(in) == 0 {
		return nil, apperr.BadRequestf("at least one tag is required")
	}
	batch := len(in) > 1

	rows := make([]model.Tag, 0, len(in))
	for i, item := range in {
		name := strings.TrimSpace(item.Name)
		if err := required(field{"name", name}); err != nil {
			return nil, itemErr(batch, i, err)
		}
		if err := withinLimits(bounded{"name", name, maxTagName}); err != nil {
			return nil, itemErr(batch, i, err)
		}
		rows = append(rows, model.Tag{ID: newID(), Name: name})
	}

	err := s.inTx(ctx, "create_tags", func(ctx context.Context, tx *sqlx.Tx) error {
		seen := map[string]bool{}
		for i, tag := range rows {
			if seen[tag.Name] {
				return itemErr(batch, i, apperr.Conflictf("tag %q is repeated", tag.Name))
			}
			seen[tag.Name] = true

			if _, found, err := s.repos.Tag.FindByName(ctx, tx, tag.Name); err != nil {
				return err
			} else if found {
				return itemErr(batch, i, apperr.Conflictf("tag %q already exists", tag.Name))
			}
		}
		return s.repos.Tag.Insert(ctx, tx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tags: %w", err)
	}
	s.logger.Info("Tags created", zap.Int("count", len(rows)))
	return rows, nil
}

func (s *Service) GetTag(ctx context.Context, id string) (model.Tag, error) {
	ctx, cancel := s.read(ctx)
	defer cancel()

	tag, found, err := s.repos.Tag.Get(ctx, s.db(), id)
	if err != nil {
		return model.Tag{}, fmt.Errorf("failed to get tag: %w", err)
	}
	if !found {
		return model.Tag{}, apperr.NotFoundf("tag %s not found", id)
	}
	return tag, nil
}

func (s *Service) ListTags(ctx context.Context, f model.TagFilter) ([]model.Tag, error) {
	ctx, cancel := s.read(ctx)
	defer cancel()

	tags, err := s.repos.Tag.List(ctx, s.db(), f)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// DeleteTag removes the tag and its links. Tagged pois are kept.
func (s *Service) DeleteTag(ctx context.Context, id string) error {
	err := s.inTx(ctx, "delete_tag", func(ctx context.Context, tx *sqlx.Tx) error {
		if _, found, err := s.repos.Tag.Get(ctx, tx, id); err != nil {
			return err
		} else if !found {
			return apperr.NotFoundf("tag %s not found", id)
		}
		return s.repos.Tag.Delete(ctx, tx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	s.logger.Info("Tag deleted", zap.String("id", id))
	return nil
}

// TagPoi links an existing poi and tag.
func (s *Service) TagPoi(ctx context.Context, poiID, tagID string) (model.PoiTag, error) {
	link := model.PoiTag{PoiID: poiID, TagID: tagID}
	err := s.inTx(ctx, "tag_poi", func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.requirePoiAndTag(ctx, tx, poiID, tagID); err != nil {
			return err
		}
		linked, err := s.repos.Tag.Linked(ctx, tx, poiID, tagID)
		if err != nil {
			return err
		}
		if linked {
			return apperr.Conflictf("poi %s is already tagged with %s", poiID, tagID)
		}
		return s.repos.Tag.Link(ctx, tx, []model.PoiTag{link})
	})
	if err != nil {
		return model.PoiTag{}, fmt.Errorf("failed to tag poi: %w", err)
	}
	return link, nil
}

// UntagPoi removes an existing link.
func (s *Service) UntagPoi(ctx context.Context, poiID, tagID string) error {
	err := s.inTx(ctx, "untag_poi", func(ctx context.Context, tx *sqlx.Tx) error {
		removed, err := s.repos.Tag.Unlink(ctx, tx, poiID, tagID)
		if err != nil {
			return err
		}
		if !removed {
			return apperr.NotFoundf("poi %s is not tagged with %s", poiID, tagID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to untag poi: %w", err)
	}
	return nil
}

// TagsOfPoi lists the tags of an existing poi ordered by name.
func (s *Service) TagsOfPoi(ctx context.Context, poiID string) ([]model.Tag, error) {
	ctx, cancel := s.read(ctx)
	defer cancel()

	if _, found, err := s.repos.Poi.Get(ctx, s.db(), poiID); err != nil {
		return nil, fmt.Errorf("failed to get poi: %w", err)
	} else if !found {
		return nil, apperr.NotFoundf("poi %s not found", poiID)
	}
	tags, err := s.repos.Tag.TagsOfPoi(ctx, s.db(), poiID)
	if err != nil {
		return nil, fmt.Errorf("failed to list poi tags: %w", err)
	}
	return tags, nil
}

func (s *Service) requirePoiAndTag(ctx context.Context, tx *sqlx.Tx, poiID, tagID string) error {
	if _, found, err := s.repos.Poi.Get(ctx, tx, poiID); err != nil {
		return err
	} else if !found {
		return apperr.NotFoundf("poi %s not found", poiID)
	}
	if _, found, err := s.repos.Tag.Get(ctx, tx, tagID); err != nil {
		return err
	} else if !found {
		return apperr.NotFoundf("tag %s not found", tagID)
	}
	return nil
}
