package service

import (
	"context"

	"github.com/alexivanou/geotrip-api/internal/model"
)

// ServiceInterface is what the HTTP handlers need from the service layer.
type ServiceInterface interface {
	CreateCountries(ctx context.Context, in []model.CountryInput) ([]model.Country, error)
	GetCountry(ctx context.Context, id string) (model.Country, error)
	ListCountries(ctx context.Context, f model.CountryFilter) ([]model.Country, error)
	UpdateCountry(ctx context.Context, id string, patch model.CountryPatch) (model.Country, error)
	DeleteCountry(ctx context.Context, id string) error

	CreateCities(ctx context.Context, in []model.CityInput) ([]model.City, error)
	GetCity(ctx context.Context, id string) (model.City, error)
	ListCities(ctx context.Context, f model.CityFilter) ([]model.City, error)
	UpdateCity(ctx context.Context, id string, patch model.CityPatch) (model.City, error)
	DeleteCity(ctx context.Context, id string) error

	CreatePois(ctx context.Context, in []model.PoiInput) ([]model.Poi, error)
	GetPoi(ctx context.Context, id string) (model.Poi, error)
	ListPois(ctx context.Context, f model.PoiFilter) ([]model.Poi, error)
	PopularPois(ctx context.Context) ([]model.Poi, error)
	UpdatePoi(ctx context.Context, id string, patch model.PoiPatch) (model.Poi, error)
	DeletePoi(ctx context.Context, id string) error

	CreatePoiImages(ctx context.Context, in []model.PoiImageInput) ([]model.PoiImage, error)
	GetPoiImage(ctx context.Context, id string) (model.PoiImage, error)
	ListPoiImages(ctx context.Context, poiID string) ([]model.PoiImage, error)
	DeletePoiImage(ctx context.Context, id string) error

	CreateTags(ctx context.Context, in []model.TagInput) ([]model.Tag, error)
	GetTag(ctx context.Context, id string) (model.Tag, error)
	ListTags(ctx context.Context, f model.TagFilter) ([]model.Tag, error)
	DeleteTag(ctx context.Context, id string) error
	TagPoi(ctx context.Context, poiID, tagID string) (model.PoiTag, error)
	UntagPoi(ctx context.Context, poiID, tagID string) error
	TagsOfPoi(ctx context.Context, poiID string) ([]model.Tag, error)

	AddRelation(ctx context.Context, r Relation, userID string, in model.RelationInput) (model.Poi, error)
	RemoveRelation(ctx context.Context, r Relation, userID, poiID string) error
	ListRelation(ctx context.Context, r Relation, userID string) ([]model.Poi, error)

	Register(ctx context.Context, in model.RegisterInput) (model.User, error)
	CreateUsers(ctx context.Context, in []model.UserInput) ([]model.User, error)
	Login(ctx context.Context, in model.LoginInput) (model.AuthResponse, error)
	Authenticate(raw string) (Principal, error)
	GetProfile(ctx context.Context, userID string) (model.User, error)
	UpdateProfile(ctx context.Context, userID string, patch model.ProfilePatch) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

var _ ServiceInterface = (*Service)(nil)
