package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alexivanou/geotrip-api/internal/apperr"
	"github.com/alexivanou/geotrip-api/internal/auth"
	"github.com/alexivanou/geotrip-api/internal/config"
	"github.com/alexivanou/geotrip-api/internal/database"
	"github.com/alexivanou/geotrip-api/internal/model"
	"github.com/alexivanou/geotrip-api/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func setupService(t *testing.T) *Service {
	cfg := config.DBConfig{Type: config.DBTypeMemory, Name: "svc_" + uuid.NewString()}
	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, cfg, "../../migrations"))

	repos := repository.NewRepositories(db, config.DBTypeMemory)
	return NewService(
		repos,
		auth.NewHasher(bcrypt.MinCost),
		auth.NewIssuer("test-secret", time.Hour),
		zap.NewNop(),
		time.Second,
	)
}

func ptr[T any](v T) *T { return &v }

func mustCountry(t *testing.T, s *Service, name string) model.Country {
	out, err := s.CreateCountries(context.Background(), []model.CountryInput{{Name: name}})
	require.NoError(t, err)
	return out[0]
}

func mustCity(t *testing.T, s *Service, name, countryID string) model.City {
	out, err := s.CreateCities(context.Background(), []model.CityInput{{Name: name, Climate: "mild", CountryID: countryID}})
	require.NoError(t, err)
	return out[0]
}

func mustPoi(t *testing.T, s *Service, name, cityID string) model.Poi {
	out, err := s.CreatePois(context.Background(), []model.PoiInput{{
		Name: name, Description: "desc", Latitude: ptr(10.0), Longitude: ptr(20.0), CityID: cityID,
	}})
	require.NoError(t, err)
	return out[0]
}

func mustUser(t *testing.T, s *Service, userName string) model.User {
	u, err := s.Register(context.Background(), model.RegisterInput{
		Name: "Test " + userName, UserName: userName, Email: userName + "@example.com",
		Password: "pa55word", BirthDate: "1991-04-12",
	})
	require.NoError(t, err)
	return u
}

func TestCreateCities_BatchIsAtomic(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	country := mustCountry(t, s, "Portugal")

	_, err := s.CreateCities(ctx, []model.CityInput{
		{Name: "Lisbon", Climate: "mediterranean", CountryID: country.ID},
		{Name: "Porto", Climate: "oceanic", CountryID: uuid.NewString()},
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotFound))
	assert.Contains(t, apperr.MessageOf(err), "item 1")

	cities, err := s.ListCities(ctx, model.CityFilter{})
	require.NoError(t, err)
	assert.Empty(t, cities)
}

func TestCreateCities_ValidationBeforeWrite(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	country := mustCountry(t, s, "Portugal")

	_, err := s.CreateCities(ctx, []model.CityInput{
		{Name: "Lisbon", Climate: "mediterranean", CountryID: country.ID},
		{Name: "  ", CountryID: country.ID},
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.BadRequest))
	assert.Equal(t, "item 1: missing required fields: name, climate", apperr.MessageOf(err))

	_, err = s.CreateCities(ctx, nil)
	assert.True(t, apperr.Is(err, apperr.BadRequest))
}

func TestCreateCities_ScopedUniqueness(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	spain := mustCountry(t, s, "Spain")
	mexico := mustCountry(t, s, "Mexico")
	mustCity(t, s, "Valencia", spain.ID)

	// Same name under another parent is fine
	mustCity(t, s, "Valencia", mexico.ID)

	_, err := s.CreateCities(ctx, []model.CityInput{{Name: "Valencia", Climate: "dry", CountryID: spain.ID}})
	assert.True(t, apperr.Is(err, apperr.Conflict))

	// Duplicates inside a single batch
	_, err = s.CreateCities(ctx, []model.CityInput{
		{Name: "Bilbao", Climate: "oceanic", CountryID: spain.ID},
		{Name: "Bilbao", Climate: "oceanic", CountryID: spain.ID},
	})
	assert.True(t, apperr.Is(err, apperr.Conflict))

	cities, err := s.ListCities(ctx, model.CityFilter{CountryID: spain.ID})
	require.NoError(t, err)
	assert.Len(t, cities, 1)
}

func TestCountries_NamesNotUnique(t *testing.T) {
	s := setupService(t)
	out, err := s.CreateCountries(context.Background(), []model.CountryInput{{Name: "Congo"}, {Name: "Congo"}})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.NotEqual(t, out[0].ID, out[1].ID)
}

func TestUpdateCity(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	spain := mustCountry(t, s, "Spain")
	madrid := mustCity(t, s, "Madrid", spain.ID)
	mustCity(t, s, "Sevilla", spain.ID)

	t.Run("Same name keeps the row valid", func(t *testing.T) {
		city, err := s.UpdateCity(ctx, madrid.ID, model.CityPatch{Name: ptr("Madrid"), Climate: ptr("continental")})
		require.NoError(t, err)
		assert.Equal(t, "continental", city.Climate)
	})

	t.Run("Empty fields are ignored", func(t *testing.T) {
		city, err := s.UpdateCity(ctx, madrid.ID, model.CityPatch{Name: ptr("")})
		require.NoError(t, err)
		assert.Equal(t, "Madrid", city.Name)
	})

	t.Run("Rename onto sibling conflicts", func(t *testing.T) {
		_, err := s.UpdateCity(ctx, madrid.ID, model.CityPatch{Name: ptr("Sevilla")})
		assert.True(t, apperr.Is(err, apperr.Conflict))
	})

	t.Run("Unknown parent", func(t *testing.T) {
		_, err := s.UpdateCity(ctx, madrid.ID, model.CityPatch{CountryID: ptr(uuid.NewString())})
		assert.True(t, apperr.Is(err, apperr.NotFound))
	})

	t.Run("Unknown city", func(t *testing.T) {
		_, err := s.UpdateCity(ctx, uuid.NewString(), model.CityPatch{Name: ptr("X")})
		assert.True(t, apperr.Is(err, apperr.NotFound))
	})

	got, err := s.GetCity(ctx, madrid.ID)
	require.NoError(t, err)
	assert.Equal(t, "Madrid", got.Name)
}

func TestCreatePois_Validation(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	city := mustCity(t, s, "Rome", mustCountry(t, s, "Italy").ID)

	_, err := s.CreatePois(ctx, []model.PoiInput{{Name: "Colosseum", Description: "arena", Latitude: ptr(41.89), CityID: city.ID}})
	assert.True(t, apperr.Is(err, apperr.BadRequest))
	assert.Contains(t, apperr.MessageOf(err), "longitude")

	_, err = s.CreatePois(ctx, []model.PoiInput{{Name: "Colosseum", Description: "arena", Latitude: ptr(91.0), Longitude: ptr(12.49), CityID: city.ID}})
	assert.True(t, apperr.Is(err, apperr.BadRequest))

	// Zero is a legal coordinate
	poi, err := s.CreatePois(ctx, []model.PoiInput{{Name: "Null Island", Description: "buoy", Latitude: ptr(0.0), Longitude: ptr(0.0), CityID: city.ID}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, poi[0].Latitude)

	_, err = s.UpdatePoi(ctx, poi[0].ID, model.PoiPatch{Longitude: ptr(-181.0)})
	assert.True(t, apperr.Is(err, apperr.BadRequest))
}

func TestDeleteCountry_Cascades(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	country := mustCountry(t, s, "Greece")
	city := mustCity(t, s, "Athens", country.ID)
	poi := mustPoi(t, s, "Acropolis", city.ID)
	tags, err := s.CreateTags(ctx, []model.TagInput{{Name: "ruins"}})
	require.NoError(t, err)
	_, err = s.TagPoi(ctx, poi.ID, tags[0].ID)
	require.NoError(t, err)
	_, err = s.CreatePoiImages(ctx, []model.PoiImageInput{{URL: "http://img/acropolis", PoiID: poi.ID}})
	require.NoError(t, err)
	user := mustUser(t, s, "nikos")
	_, err = s.AddRelation(ctx, Favorites, user.ID, model.RelationInput{PoiID: poi.ID})
	require.NoError(t, err)
	_, err = s.AddRelation(ctx, Visited, user.ID, model.RelationInput{PoiID: poi.ID})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCountry(ctx, country.ID))

	_, err = s.GetCity(ctx, city.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
	_, err = s.GetPoi(ctx, poi.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))

	favs, err := s.ListRelation(ctx, Favorites, user.ID)
	require.NoError(t, err)
	assert.Empty(t, favs)
	visited, err := s.ListRelation(ctx, Visited, user.ID)
	require.NoError(t, err)
	assert.Empty(t, visited)

	// Shared endpoints survive
	_, err = s.GetTag(ctx, tags[0].ID)
	assert.NoError(t, err)
	_, err = s.GetProfile(ctx, user.ID)
	assert.NoError(t, err)

	err = s.DeleteCountry(ctx, country.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestDeleteCity_KeepsSiblings(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	country := mustCountry(t, s, "Germany")
	berlin := mustCity(t, s, "Berlin", country.ID)
	munich := mustCity(t, s, "Munich", country.ID)
	mustPoi(t, s, "Reichstag", berlin.ID)
	keep := mustPoi(t, s, "Marienplatz", munich.ID)

	require.NoError(t, s.DeleteCity(ctx, berlin.ID))

	pois, err := s.ListPois(ctx, model.PoiFilter{CountryID: country.ID})
	require.NoError(t, err)
	require.Len(t, pois, 1)
	assert.Equal(t, keep.ID, pois[0].ID)
	_, err = s.GetCountry(ctx, country.ID)
	assert.NoError(t, err)
}

func TestTags(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	city := mustCity(t, s, "Oslo", mustCountry(t, s, "Norway").ID)
	poi := mustPoi(t, s, "Opera House", city.ID)

	tags, err := s.CreateTags(ctx, []model.TagInput{{Name: "music"}, {Name: "architecture"}, {Name: "harbour"}})
	require.NoError(t, err)

	_, err = s.CreateTags(ctx, []model.TagInput{{Name: "music"}})
	assert.True(t, apperr.Is(err, apperr.Conflict))

	for _, tag := range tags {
		_, err := s.TagPoi(ctx, poi.ID, tag.ID)
		require.NoError(t, err)
	}

	_, err = s.TagPoi(ctx, poi.ID, tags[0].ID)
	assert.True(t, apperr.Is(err, apperr.Conflict))
	_, err = s.TagPoi(ctx, uuid.NewString(), tags[0].ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
	_, err = s.TagPoi(ctx, poi.ID, uuid.NewString())
	assert.True(t, apperr.Is(err, apperr.NotFound))

	got, err := s.TagsOfPoi(ctx, poi.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, tag := range got {
		names = append(names, tag.Name)
	}
	assert.Equal(t, []string{"architecture", "harbour", "music"}, names)

	require.NoError(t, s.UntagPoi(ctx, poi.ID, tags[0].ID))
	err = s.UntagPoi(ctx, poi.ID, tags[0].ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))

	require.NoError(t, s.DeleteTag(ctx, tags[1].ID))
	got, err = s.TagsOfPoi(ctx, poi.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	_, err = s.GetPoi(ctx, poi.ID)
	assert.NoError(t, err)

	_, err = s.TagsOfPoi(ctx, uuid.NewString())
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestRelations(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	city := mustCity(t, s, "Prague", mustCountry(t, s, "Czechia").ID)
	poi := mustPoi(t, s, "Charles Bridge", city.ID)
	user := mustUser(t, s, "jana")

	empty, err := s.ListRelation(ctx, Favorites, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	added, err := s.AddRelation(ctx, Favorites, user.ID, model.RelationInput{PoiID: poi.ID})
	require.NoError(t, err)
	assert.Equal(t, poi.ID, added.ID)

	_, err = s.AddRelation(ctx, Favorites, user.ID, model.RelationInput{PoiID: poi.ID})
	assert.True(t, apperr.Is(err, apperr.Conflict))
	_, err = s.AddRelation(ctx, Favorites, user.ID, model.RelationInput{PoiID: uuid.NewString()})
	assert.True(t, apperr.Is(err, apperr.NotFound))
	_, err = s.AddRelation(ctx, Favorites, user.ID, model.RelationInput{})
	assert.True(t, apperr.Is(err, apperr.BadRequest))

	// Visited is an independent set
	visited, err := s.ListRelation(ctx, Visited, user.ID)
	require.NoError(t, err)
	assert.Empty(t, visited)

	err = s.RemoveRelation(ctx, Visited, user.ID, poi.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
	require.NoError(t, s.RemoveRelation(ctx, Favorites, user.ID, poi.ID))
}

func TestRegisterAndLogin(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	user := mustUser(t, s, "maria")
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "pa55word", user.PasswordHash)

	t.Run("Duplicate user_name", func(t *testing.T) {
		_, err := s.Register(ctx, model.RegisterInput{
			Name: "Other", UserName: "maria", Email: "other@example.com", Password: "x", BirthDate: "2000-01-01",
		})
		assert.True(t, apperr.Is(err, apperr.Conflict))
	})

	t.Run("Duplicate email", func(t *testing.T) {
		_, err := s.Register(ctx, model.RegisterInput{
			Name: "Other", UserName: "other", Email: "maria@example.com", Password: "x", BirthDate: "2000-01-01",
		})
		assert.True(t, apperr.Is(err, apperr.Conflict))
	})

	t.Run("Bad birth date", func(t *testing.T) {
		_, err := s.Register(ctx, model.RegisterInput{
			Name: "Other", UserName: "other", Email: "other@example.com", Password: "x", BirthDate: "12/04/1991",
		})
		assert.True(t, apperr.Is(err, apperr.BadRequest))
	})

	t.Run("Login by email and user_name", func(t *testing.T) {
		resp, err := s.Login(ctx, model.LoginInput{Email: "maria@example.com", Password: "pa55word"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, resp.User.ID)
		assert.NotEmpty(t, resp.AccessToken)

		p, err := s.Authenticate(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, p.UserID)
		assert.Equal(t, model.RoleUser, p.Role)

		_, err = s.Login(ctx, model.LoginInput{Identifier: "maria", Password: "pa55word"})
		assert.NoError(t, err)
	})

	t.Run("Failures are indistinguishable", func(t *testing.T) {
		_, wrongPassword := s.Login(ctx, model.LoginInput{Identifier: "maria", Password: "nope"})
		_, unknownUser := s.Login(ctx, model.LoginInput{Identifier: "ghost", Password: "nope"})

		assert.True(t, apperr.Is(wrongPassword, apperr.Unauthorized))
		assert.True(t, apperr.Is(unknownUser, apperr.Unauthorized))
		assert.Equal(t, apperr.MessageOf(wrongPassword), apperr.MessageOf(unknownUser))
	})

	t.Run("Invalid token", func(t *testing.T) {
		_, err := s.Authenticate("not.a.token")
		assert.True(t, apperr.Is(err, apperr.Unauthorized))
	})
}

func TestUpdateProfile(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	alice := mustUser(t, s, "alice")
	mustUser(t, s, "bob")

	updated, err := s.UpdateProfile(ctx, alice.ID, model.ProfilePatch{
		UserName:  ptr("alice"),
		Location:  ptr("Lisbon"),
		BirthDate: ptr("1990-02-03"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Location)
	assert.Equal(t, "Lisbon", *updated.Location)
	assert.Equal(t, "1990-02-03", updated.BirthDate.String())

	_, err = s.UpdateProfile(ctx, alice.ID, model.ProfilePatch{Email: ptr("bob@example.com")})
	assert.True(t, apperr.Is(err, apperr.Conflict))

	_, err = s.UpdateProfile(ctx, alice.ID, model.ProfilePatch{Password: ptr("n3w-secret")})
	require.NoError(t, err)
	_, err = s.Login(ctx, model.LoginInput{Identifier: "alice", Password: "n3w-secret"})
	assert.NoError(t, err)

	got, err := s.GetProfile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "1990-02-03", got.BirthDate.String())
}

func TestCreateUsers_AndDelete(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	city := mustCity(t, s, "Vienna", mustCountry(t, s, "Austria").ID)
	poi := mustPoi(t, s, "Belvedere", city.ID)

	_, err := s.CreateUsers(ctx, []model.UserInput{{
		RegisterInput: model.RegisterInput{Name: "R", UserName: "root", Email: "root@example.com", Password: "x", BirthDate: "1980-01-01"},
		Role:          "superuser",
	}})
	assert.True(t, apperr.Is(err, apperr.BadRequest))

	users, err := s.CreateUsers(ctx, []model.UserInput{
		{RegisterInput: model.RegisterInput{Name: "R", UserName: "root", Email: "root@example.com", Password: "x", BirthDate: "1980-01-01"}, Role: model.RoleAdmin},
		{RegisterInput: model.RegisterInput{Name: "G", UserName: "guest", Email: "guest@example.com", Password: "x", BirthDate: "1981-01-01"}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, users[0].Role)
	assert.Equal(t, model.RoleUser, users[1].Role)

	_, err = s.AddRelation(ctx, Visited, users[1].ID, model.RelationInput{PoiID: poi.ID})
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, users[1].ID))
	_, err = s.ListRelation(ctx, Visited, users[1].ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))

	all, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = s.GetPoi(ctx, poi.ID)
	assert.NoError(t, err)
}

func TestImportCatalog(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	_, err := s.CreateTags(ctx, []model.TagInput{{Name: "museum"}})
	require.NoError(t, err)

	cat := model.Catalog{
		Tags: []string{"museum", "park"},
		Countries: []model.CatalogCountry{{
			Name: "Netherlands",
			Cities: []model.CatalogCity{{
				Name: "Amsterdam", Climate: "oceanic",
				Pois: []model.CatalogPoi{
					{Name: "Rijksmuseum", Description: "art", Latitude: ptr(52.36), Longitude: ptr(4.88), Images: []string{"http://img/r"}, Tags: []string{"museum", "museum"}},
					{Name: "Vondelpark", Description: "park", Latitude: ptr(52.36), Longitude: ptr(4.87), Tags: []string{"park", "city"}},
				},
			}},
		}},
	}

	summary, err := s.ImportCatalog(ctx, cat)
	require.NoError(t, err)
	assert.Equal(t, model.ImportSummary{Countries: 1, Cities: 1, Pois: 2, Images: 1, Tags: 2, Links: 3}, summary)

	tags, err := s.ListTags(ctx, model.TagFilter{})
	require.NoError(t, err)
	assert.Len(t, tags, 3)

	popular, err := s.PopularPois(ctx)
	require.NoError(t, err)
	assert.Len(t, popular, 2)

	t.Run("Invalid document writes nothing", func(t *testing.T) {
		bad := model.Catalog{Countries: []model.CatalogCountry{{
			Name:   "Belgium",
			Cities: []model.CatalogCity{{Name: "Ghent", Climate: "oceanic", Pois: []model.CatalogPoi{{Name: "Gravensteen"}}}},
		}}}
		_, err := s.ImportCatalog(ctx, bad)
		assert.True(t, apperr.Is(err, apperr.BadRequest))

		countries, err := s.ListCountries(ctx, model.CountryFilter{})
		require.NoError(t, err)
		assert.Len(t, countries, 1)
	})
}

func TestPoiImages(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	city := mustCity(t, s, "Cairo", mustCountry(t, s, "Egypt").ID)
	poi := mustPoi(t, s, "Giza", city.ID)

	images, err := s.CreatePoiImages(ctx, []model.PoiImageInput{
		{URL: "http://img/1", PoiID: poi.ID},
		{URL: "http://img/2", PoiID: poi.ID},
	})
	require.NoError(t, err)

	list, err := s.ListPoiImages(ctx, poi.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, s.DeletePoiImage(ctx, images[0].ID))
	_, err = s.GetPoiImage(ctx, images[0].ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))

	_, err = s.CreatePoiImages(ctx, []model.PoiImageInput{{URL: "http://img/3", PoiID: uuid.NewString()}})
	assert.True(t, apperr.Is(err, apperr.NotFound))
	_, err = s.ListPoiImages(ctx, uuid.NewString())
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestCreatePois_BatchIsAtomic(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	city := mustCity(t, s, "Rome", mustCountry(t, s, "Italy").ID)
	mustPoi(t, s, "Colosseum", city.ID)

	_, err := s.CreatePois(ctx, []model.PoiInput{
		{Name: "Pantheon", Description: "temple", Latitude: ptr(41.89), Longitude: ptr(12.47), CityID: city.ID},
		{Name: "Trevi Fountain", Description: "fountain", Latitude: ptr(41.90), Longitude: ptr(12.48), CityID: city.ID},
		{Name: "Colosseum", Description: "again", Latitude: ptr(41.89), Longitude: ptr(12.49), CityID: city.ID},
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Conflict))
	assert.Contains(t, apperr.MessageOf(err), "item 2")

	pois, err := s.ListPois(ctx, model.PoiFilter{CityID: city.ID})
	require.NoError(t, err)
	require.Len(t, pois, 1)
	assert.Equal(t, "Colosseum", pois[0].Name)
}

func TestUpdateProfile_OwnIdentifiers(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	carol := mustUser(t, s, "carol")

	updated, err := s.UpdateProfile(ctx, carol.ID, model.ProfilePatch{
		Name:     ptr("Carol Danvers"),
		UserName: ptr("carol"),
		Email:    ptr("carol@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Carol Danvers", updated.Name)
	assert.Equal(t, "carol@example.com", updated.Email)

	// A new user_name still checks the unchanged email against other accounts
	updated, err = s.UpdateProfile(ctx, carol.ID, model.ProfilePatch{
		UserName: ptr("captain"),
		Email:    ptr("carol@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "captain", updated.UserName)
}

func TestFieldLimits(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	country := mustCountry(t, s, "Greece")
	city := mustCity(t, s, "Athens", country.ID)
	poi := mustPoi(t, s, "Acropolis", city.ID)
	user := mustUser(t, s, "eleni")
	long := func(n int) string { return strings.Repeat("x", n) }

	tests := []struct {
		name string
		call func() error
	}{
		{name: "tag name", call: func() error {
			_, err := s.CreateTags(ctx, []model.TagInput{{Name: long(61)}})
			return err
		}},
		{name: "country name", call: func() error {
			_, err := s.CreateCountries(ctx, []model.CountryInput{{Name: long(121)}})
			return err
		}},
		{name: "city img", call: func() error {
			_, err := s.CreateCities(ctx, []model.CityInput{{Name: "Sparta", Climate: "dry", Img: long(241), CountryID: country.ID}})
			return err
		}},
		{name: "poi description", call: func() error {
			_, err := s.CreatePois(ctx, []model.PoiInput{{
				Name: "Agora", Description: long(501), Latitude: ptr(37.97), Longitude: ptr(23.72), CityID: city.ID,
			}})
			return err
		}},
		{name: "image url", call: func() error {
			_, err := s.CreatePoiImages(ctx, []model.PoiImageInput{{URL: long(501), PoiID: poi.ID}})
			return err
		}},
		{name: "user_name", call: func() error {
			_, err := s.Register(ctx, model.RegisterInput{
				Name: "N", UserName: long(31), Email: "n@example.com", Password: "pw", BirthDate: "2000-01-01",
			})
			return err
		}},
		{name: "country rename", call: func() error {
			_, err := s.UpdateCountry(ctx, country.ID, model.CountryPatch{Name: ptr(long(121))})
			return err
		}},
		{name: "city climate patch", call: func() error {
			_, err := s.UpdateCity(ctx, city.ID, model.CityPatch{Climate: ptr(long(121))})
			return err
		}},
		{name: "poi rename", call: func() error {
			_, err := s.UpdatePoi(ctx, poi.ID, model.PoiPatch{Name: ptr(long(121))})
			return err
		}},
		{name: "profile location", call: func() error {
			_, err := s.UpdateProfile(ctx, user.ID, model.ProfilePatch{Location: ptr(long(121))})
			return err
		}},
		{name: "imported tag", call: func() error {
			_, err := s.ImportCatalog(ctx, model.Catalog{Tags: []string{long(61)}})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Equal(t, apperr.BadRequest, apperr.KindOf(err))
			assert.Contains(t, apperr.MessageOf(err), "at most")
		})
	}

	// Limits count characters, not bytes
	_, err := s.CreateTags(ctx, []model.TagInput{{Name: strings.Repeat("é", 60)}})
	assert.NoError(t, err)

	got, err := s.GetCountry(ctx, country.ID)
	require.NoError(t, err)
	assert.Equal(t, "Greece", got.Name)
}

func TestPasswordLength(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, model.RegisterInput{
		Name: "Long", UserName: "long", Email: "long@example.com",
		Password: strings.Repeat("a", 80), BirthDate: "1980-08-08",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.BadRequest, apperr.KindOf(err))

	_, err = s.CreateUsers(ctx, []model.UserInput{{RegisterInput: model.RegisterInput{
		Name: "Long", UserName: "long", Email: "long@example.com",
		Password: strings.Repeat("a", 73), BirthDate: "1980-08-08",
	}}})
	assert.Equal(t, apperr.BadRequest, apperr.KindOf(err))

	user, err := s.Register(ctx, model.RegisterInput{
		Name: "Edge", UserName: "edge", Email: "edge@example.com",
		Password: strings.Repeat("a", 72), BirthDate: "1980-08-08",
	})
	require.NoError(t, err)

	_, err = s.UpdateProfile(ctx, user.ID, model.ProfilePatch{Password: ptr(strings.Repeat("b", 80))})
	assert.Equal(t, apperr.BadRequest, apperr.KindOf(err))
	_, err = s.Login(ctx, model.LoginInput{Identifier: "edge", Password: strings.Repeat("a", 72)})
	assert.NoError(t, err)
}
