package repository

import (
	"context"
	"fmt"

	"github.com/alexivanou/geotrip-api/internal/config"
	"github.com/alexivanou/geotrip-api/internal/model"
	"github.com/jmoiron/sqlx"
)

// Querier is satisfied by both *sqlx.DB and *sqlx.Tx. Store methods take one
// explicitly so writes always run inside the caller's transaction.
type Querier interface {
	sqlx.ExtContext
}

// CountryRepository defines operations for countries
type CountryRepository interface {
	Get(ctx context.Context, q Querier, id string) (model.Country, bool, error)
	List(ctx context.Context, q Querier, f model.CountryFilter) ([]model.Country, error)
	Insert(ctx context.Context, q Querier, countries []model.Country) error
	Update(ctx context.Context, q Querier, country model.Country) error
	Delete(ctx context.Context, q Querier, id string) error
}

// CityRepository defines operations for cities
type CityRepository interface {
	Get(ctx context.Context, q Querier, id string) (model.City, bool, error)
	FindByName(ctx context.Context, q Querier, name, countryID string) (model.City, bool, error)
	List(ctx context.Context, q Querier, f model.CityFilter) ([]model.City, error)
	Insert(ctx context.Context, q Querier, cities []model.City) error
	Update(ctx context.Context, q Querier, city model.City) error
	Delete(ctx context.Context, q Querier, id string) error
}

// PoiRepository defines operations for points of interest
type PoiRepository interface {
	Get(ctx context.Context, q Querier, id string) (model.Poi, bool, error)
	FindByName(ctx context.Context, q Querier, name, cityID string) (model.Poi, bool, error)
	List(ctx context.Context, q Querier, f model.PoiFilter) ([]model.Poi, error)
	Random(ctx context.Context, q Querier, limit int) ([]model.Poi, error)
	Insert(ctx context.Context, q Querier, pois []model.Poi) error
	Update(ctx context.Context, q Querier, poi model.Poi) error
	Delete(ctx context.Context, q Querier, id string) error
}

// PoiImageRepository defines operations for poi images
type PoiImageRepository interface {
	Get(ctx context.Context, q Querier, id string) (model.PoiImage, bool, error)
	ListByPoi(ctx context.Context, q Querier, poiID string) ([]model.PoiImage, error)
	Insert(ctx context.Context, q Querier, images []model.PoiImage) error
	Delete(ctx context.Context, q Querier, id string) error
}

// TagRepository defines operations for tags and poi/tag links
type TagRepository interface {
	Get(ctx context.Context, q Querier, id string) (model.Tag, bool, error)
	FindByName(ctx context.Context, q Querier, name string) (model.Tag, bool, error)
	List(ctx context.Context, q Querier, f model.TagFilter) ([]model.Tag, error)
	Insert(ctx context.Context, q Querier, tags []model.Tag) error
	Delete(ctx context.Context, q Querier, id string) error
	Linked(ctx context.Context, q Querier, poiID, tagID string) (bool, error)
	Link(ctx context.Context, q Querier, links []model.PoiTag) error
	Unlink(ctx context.Context, q Querier, poiID, tagID string) (bool, error)
	TagsOfPoi(ctx context.Context, q Querier, poiID string) ([]model.Tag, error)
}

// UserRepository defines operations for users
type UserRepository interface {
	Get(ctx context.Context, q Querier, id string) (model.User, bool, error)
	FindByUserName(ctx context.Context, q Querier, userName string) (model.User, bool, error)
	FindByEmail(ctx context.Context, q Querier, email string) (model.User, bool, error)
	FindByIdentifier(ctx context.Context, q Querier, identifier string) (model.User, bool, error)
	List(ctx context.Context, q Querier) ([]model.User, error)
	Insert(ctx context.Context, q Querier, users []model.User) error
	Update(ctx context.Context, q Querier, user model.User) error
	Delete(ctx context.Context, q Querier, id string) error
}

// RelationRepository defines operations for a user-to-poi association table
type RelationRepository interface {
	Exists(ctx context.Context, q Querier, userID, poiID string) (bool, error)
	Add(ctx context.Context, q Querier, userID, poiID string) error
	Remove(ctx context.Context, q Querier, userID, poiID string) (bool, error)
	ListPois(ctx context.Context, q Querier, userID string) ([]model.Poi, error)
}

// Container holds all repositories
type Container struct {
	DB        *sqlx.DB
	Tx        *TxManager
	Country   CountryRepository
	City      CityRepository
	Poi       PoiRepository
	PoiImage  PoiImageRepository
	Tag       TagRepository
	User      UserRepository
	Favorites RelationRepository
	Visited   RelationRepository
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	var d dialect = sqliteDialect{}
	if dbType == config.DBTypePostgreSQL {
		d = pgDialect{}
	}

	return &Container{
		DB:        db,
		Tx:        NewTxManager(db),
		Country:   &countryRepository{d: d},
		City:      &cityRepository{d: d},
		Poi:       &poiRepository{d: d},
		PoiImage:  &poiImageRepository{},
		Tag:       &tagRepository{d: d},
		User:      &userRepository{},
		Favorites: &relationRepository{table: "favorites"},
		Visited:   &relationRepository{table: "visited"},
	}
}

// IsDatabaseEmpty reports whether the catalog has no countries yet (used by main)
func IsDatabaseEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM countries"); err != nil {
		return false, fmt.Errorf("failed to count countries: %w", err)
	}
	return count == 0, nil
}
