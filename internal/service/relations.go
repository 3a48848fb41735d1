package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexivanou/geotrip-api/internal/apperr"
	"github.com/alexivanou/geotrip-api/internal/model"
	"github.com/alexivanou/geotrip-api/internal/repository"
	"github.com/jmoiron/sqlx"
)

// Relation names a user-to-poi association.
type Relation string

const (
	Favorites Relation = "favorites"
	Visited   Relation = "visited"
)

func (s *Service) relation(r Relation) (repository.RelationRepository, error) {
	switch r {
	case Favorites:
		return s.repos.Favorites, nil
	case Visited:
		return s.repos.Visited, nil
	default:
		return nil, fmt.Errorf("unknown relation %q", r)
	}
}

// AddRelation records that userID marked poiID.
func (s *Service) AddRelation(ctx context.Context, r Relation, userID string, in model.RelationInput) (model.Poi, error) {
	store, err := s.relation(r)
	if err != nil {
		return model.Poi{}, err
	}
	poiID := strings.TrimSpace(in.PoiID)
	if err := required(field{"poi_id", poiID}); err != nil {
		return model.Poi{}, err
	}

	var poi model.Poi
	err = s.inTx(ctx, "add_"+string(r), func(ctx context.Context, tx *sqlx.Tx) error {
		if _, found, err := s.repos.User.Get(ctx, tx, userID); err != nil {
			return err
		} else if !found {
			return apperr.NotFoundf("user %s not found", userID)
		}
		p, found, err := s.repos.Poi.Get(ctx, tx, poiID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFoundf("poi %s not found", poiID)
		}
		exists, err := store.Exists(ctx, tx, userID, poiID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflictf("poi %s is already in %s", poiID, r)
		}
		poi = p
		return store.Add(ctx, tx, userID, poiID)
	})
	if err != nil {
		return model.Poi{}, fmt.Errorf("failed to add to %s: %w", r, err)
	}
	return poi, nil
}

func (s *Service) RemoveRelation(ctx context.Context, r Relation, userID, poiID string) error {
	store, err := s.relation(r)
	if err != nil {
		return err
	}
	err = s.inTx(ctx, "remove_"+string(r), func(ctx context.Context, tx *sqlx.Tx) error {
		removed, err := store.Remove(ctx, tx, userID, poiID)
		if err != nil {
			return err
		}
		if !removed {
			return apperr.NotFoundf("poi %s is not in %s", poiID, r)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to remove from %s: %w", r, err)
	}
	return nil
}

// ListRelation returns the pois userID marked. Empty when none.
func (s *Service) ListRelation(ctx context.Context, r Relation, userID string) ([]model.Poi, error) {
	store, err := s.relation(r)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.read(ctx)
	defer cancel()

	if _, found, err := s.repos.User.Get(ctx, s.db(), userID); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	} else if !found {
		return nil, apperr.NotFoundf("user %s not found", userID)
	}
	pois, err := store.ListPois(ctx, s.db(), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r, err)
	}
	return pois, nil
}
