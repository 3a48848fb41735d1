package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alexivanou/geotrip-api/internal/apperr"
	"github.com/alexivanou/geotrip-api/internal/config"
	"github.com/alexivanou/geotrip-api/internal/database"
	"github.com/alexivanou/geotrip-api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *Container {
	cfg := config.DBConfig{Type: config.DBTypeMemory, Name: "repo_" + uuid.NewString()}
	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, cfg, "../../migrations"))

	return NewRepositories(db, config.DBTypeMemory)
}

// seedTree inserts one country with one city, one poi, an image, a tag link
// and a favorite.
func seedTree(t *testing.T, repos *Container) (country model.Country, city model.City, poi model.Poi, tag model.Tag, user model.User) {
	ctx := context.Background()
	country = model.Country{ID: uuid.NewString(), Name: "Spain"}
	city = model.City{ID: uuid.NewString(), Name: "Madrid", Climate: "dry", CountryID: country.ID}
	poi = model.Poi{ID: uuid.NewString(), Name: "Prado", Description: "museum", Latitude: 40.41, Longitude: -3.69, CityID: city.ID}
	tag = model.Tag{ID: uuid.NewString(), Name: "art"}
	birth, _ := model.ParseDate("1990-01-01")
	user = model.User{ID: uuid.NewString(), Name: "Ana", UserName: "ana", Email: "ana@example.com", PasswordHash: "x", BirthDate: birth, Role: model.RoleUser}

	err := repos.Tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		require.NoError(t, repos.Country.Insert(ctx, tx, []model.Country{country}))
		require.NoError(t, repos.City.Insert(ctx, tx, []model.City{city}))
		require.NoError(t, repos.Poi.Insert(ctx, tx, []model.Poi{poi}))
		require.NoError(t, repos.PoiImage.Insert(ctx, tx, []model.PoiImage{{ID: uuid.NewString(), URL: "http://img/1", PoiID: poi.ID}}))
		require.NoError(t, repos.Tag.Insert(ctx, tx, []model.Tag{tag}))
		require.NoError(t, repos.Tag.Link(ctx, tx, []model.PoiTag{{PoiID: poi.ID, TagID: tag.ID}}))
		require.NoError(t, repos.User.Insert(ctx, tx, []model.User{user}))
		return repos.Favorites.Add(ctx, tx, user.ID, poi.ID)
	})
	require.NoError(t, err)
	return country, city, poi, tag, user
}

func TestCountryRepository_DeleteCascades(t *testing.T) {
	repos := setupRepo(t)
	ctx := context.Background()
	country, city, poi, tag, user := seedTree(t, repos)

	err := repos.Tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		return repos.Country.Delete(ctx, tx, country.ID)
	})
	require.NoError(t, err)

	_, found, err := repos.City.Get(ctx, repos.DB, city.ID)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = repos.Poi.Get(ctx, repos.DB, poi.ID)
	require.NoError(t, err)
	assert.False(t, found)

	images, err := repos.PoiImage.ListByPoi(ctx, repos.DB, poi.ID)
	require.NoError(t, err)
	assert.Empty(t, images)

	linked, err := repos.Tag.Linked(ctx, repos.DB, poi.ID, tag.ID)
	require.NoError(t, err)
	assert.False(t, linked)

	// Shared endpoints survive
	_, found, err = repos.Tag.Get(ctx, repos.DB, tag.ID)
	require.NoError(t, err)
	assert.True(t, found)

	favs, err := repos.Favorites.ListPois(ctx, repos.DB, user.ID)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestTagRepository_DeleteKeepsPois(t *testing.T) {
	repos := setupRepo(t)
	ctx := context.Background()
	_, _, poi, tag, _ := seedTree(t, repos)

	err := repos.Tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		return repos.Tag.Delete(ctx, tx, tag.ID)
	})
	require.NoError(t, err)

	tagsOfPoi, err := repos.Tag.TagsOfPoi(ctx, repos.DB, poi.ID)
	require.NoError(t, err)
	assert.Empty(t, tagsOfPoi)

	_, found, err := repos.Poi.Get(ctx, repos.DB, poi.ID)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestInsert_TranslatesConstraintViolations(t *testing.T) {
	repos := setupRepo(t)
	ctx := context.Background()
	country, city, _, _, _ := seedTree(t, repos)

	t.Run("unique scope", func(t *testing.T) {
		dup := model.City{ID: uuid.NewString(), Name: city.Name, Climate: "wet", CountryID: country.ID}
		err := repos.City.Insert(ctx, repos.DB, []model.City{dup})
		require.Error(t, err)
		assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	})

	t.Run("duplicate association", func(t *testing.T) {
		_, _, poi, tag, _ := seedTreeIn(t, repos, "Portugal")
		err := repos.Tag.Link(ctx, repos.DB, []model.PoiTag{{PoiID: poi.ID, TagID: tag.ID}})
		require.Error(t, err)
		assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	})

	t.Run("missing parent", func(t *testing.T) {
		orphan := model.City{ID: uuid.NewString(), Name: "Nowhere", Climate: "none", CountryID: uuid.NewString()}
		err := repos.City.Insert(ctx, repos.DB, []model.City{orphan})
		require.Error(t, err)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	repos := setupRepo(t)
	ctx := context.Background()
	id := uuid.NewString()

	err := repos.Tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		require.NoError(t, repos.Country.Insert(ctx, tx, []model.Country{{ID: id, Name: "Atlantis"}}))
		return apperr.BadRequestf("abort")
	})
	require.Error(t, err)

	_, found, err := repos.Country.Get(ctx, repos.DB, id)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPoiRepository_ListFilters(t *testing.T) {
	repos := setupRepo(t)
	ctx := context.Background()
	country, city, poi, tag, _ := seedTree(t, repos)

	tests := []struct {
		name     string
		filter   model.PoiFilter
		expected int
	}{
		{name: "no filter", filter: model.PoiFilter{}, expected: 1},
		{name: "name case insensitive", filter: model.PoiFilter{Name: "pra"}, expected: 1},
		{name: "name mismatch", filter: model.PoiFilter{Name: "Louvre"}, expected: 0},
		{name: "by city", filter: model.PoiFilter{CityID: city.ID}, expected: 1},
		{name: "by country", filter: model.PoiFilter{CountryID: country.ID}, expected: 1},
		{name: "by tag", filter: model.PoiFilter{TagID: tag.ID}, expected: 1},
		{name: "unknown tag", filter: model.PoiFilter{TagID: uuid.NewString()}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repos.Poi.List(ctx, repos.DB, tt.filter)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.expected)
			if tt.expected > 0 {
				assert.Equal(t, poi, got[0])
			}
		})
	}
}

func TestUserRepository_FindByIdentifier(t *testing.T) {
	repos := setupRepo(t)
	ctx := context.Background()
	_, _, _, _, user := seedTree(t, repos)

	byEmail, found, err := repos.User.FindByIdentifier(ctx, repos.DB, user.Email)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "1990-01-01", byEmail.BirthDate.String())

	byName, found, err := repos.User.FindByIdentifier(ctx, repos.DB, user.UserName)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, user.ID, byName.ID)

	_, found, err = repos.User.FindByIdentifier(ctx, repos.DB, "ghost")
	require.NoError(t, err)
	assert.False(t, found)
}

// seedTreeIn is seedTree for a second, independent hierarchy.
func seedTreeIn(t *testing.T, repos *Container, countryName string) (model.Country, model.City, model.Poi, model.Tag, model.User) {
	ctx := context.Background()
	country := model.Country{ID: uuid.NewString(), Name: countryName}
	city := model.City{ID: uuid.NewString(), Name: "Lisbon", Climate: "mild", CountryID: country.ID}
	poi := model.Poi{ID: uuid.NewString(), Name: "Belem", Description: "tower", Latitude: 38.69, Longitude: -9.21, CityID: city.ID}
	tag := model.Tag{ID: uuid.NewString(), Name: "history-" + countryName}

	err := repos.Tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := repos.Country.Insert(ctx, tx, []model.Country{country}); err != nil {
			return err
		}
		if err := repos.City.Insert(ctx, tx, []model.City{city}); err != nil {
			return err
		}
		if err := repos.Poi.Insert(ctx, tx, []model.Poi{poi}); err != nil {
			return err
		}
		if err := repos.Tag.Insert(ctx, tx, []model.Tag{tag}); err != nil {
			return err
		}
		return repos.Tag.Link(ctx, tx, []model.PoiTag{{PoiID: poi.ID, TagID: tag.ID}})
	})
	require.NoError(t, err)
	return country, city, poi, tag, model.User{}
}

func TestTranslateError_Postgres(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected apperr.Kind
	}{
		{name: "unique violation", code: pgUniqueViolation, expected: apperr.Conflict},
		{name: "foreign key violation", code: pgForeignKeyViolation, expected: apperr.NotFound},
		{name: "value too long", code: pgStringTooLong, expected: apperr.BadRequest},
		{name: "unhandled code", code: "40001", expected: apperr.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateError(fmt.Errorf("failed to insert into tags: %w", &pgconn.PgError{Code: tt.code}))
			assert.Equal(t, tt.expected, apperr.KindOf(err))
		})
	}

	plain := errors.New("connection reset")
	assert.Same(t, plain, translateError(plain))
}
