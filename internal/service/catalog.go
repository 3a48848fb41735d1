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

// --- Countries ---

// CreateCountries validates every item and inserts them in one transaction.
func (s *Service) CreateCountries(ctx context.Context, in []model.CountryInput) ([]model.Country, error) {
	if len(in) == 0 {
		return nil, apperr.BadRequestf("at least one country is required")
	}
	batch := len(in) > 1

	rows := make([]model.Country, 0, len(in))
	for i, item := range in {
		name := strings.TrimSpace(item.Name)
		if err := required(field{"name", name}); err != nil {
			return nil, itemErr(batch, i, err)
		}
		country := model.Country{ID: newID(), Name: name, Img: strings.TrimSpace(item.Img)}
		if err := countryLimits(country); err != nil {
			return nil, itemErr(batch, i, err)
		}
		rows = append(rows, country)
	}

	err := s.inTx(ctx, "create_countries", func(ctx context.Context, tx *sqlx.Tx) error {
		return s.repos.Country.Insert(ctx, tx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create countries: %w", err)
	}
	s.logger.Info("Countries created", zap.Int("count", len(rows)))
	return rows, nil
}

func (s *Service) GetCountry(ctx context.Context, id string) (model.Country, error) {
	ctx, cancel := s.read(ctx)
	defer cancel()

	country, found, err := s.repos.Country.Get(ctx, s.db(), id)
	if err != nil {
		return model.Country{}, fmt.Errorf("failed to get country: %w", err)
	}
	if !found {
		return model.Country{}, apperr.NotFoundf("country %s not found", id)
	}
	return country, nil
}

func (s *Service) ListCountries(ctx context.Context, f model.CountryFilter) ([]model.Country, error) {
	ctx, cancel := s.read(ctx)
	defer cancel()

	countries, err := s.repos.Country.List(ctx, s.db(), f)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

func (s *Service) UpdateCountry(ctx context.Context, id string, patch model.CountryPatch) (model.Country, error) {
	var country model.Country
	err := s.inTx(ctx, "update_country", func(ctx context.Context, tx *sqlx.Tx) error {
		current, found, err := s.repos.Country.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFoundf("country %s not found", id)
		}
		patchString(&current.Name, patch.Name)
		patchString(&current.Img, patch.Img)
		if err := countryLimits(current); err != nil {
			return err
		}
		country = current
		return s.repos.Country.Update(ctx, tx, current)
	})
	if err != nil {
		return model.Country{}, fmt.Errorf("failed to update country: %w", err)
	}
	return country, nil
}

// DeleteCountry removes the country and its whole subtree.
func (s *Service) DeleteCountry(ctx context.Context, id string) error {
	err := s.inTx(ctx, "delete_country", func(ctx context.Context, tx *sqlx.Tx) error {
		_, found, err := s.repos.Country.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFoundf("country %s not found", id)
		}
		return s.repos.Country.Delete(ctx, tx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete country: %w", err)
	}
	s.logger.Info("Country deleted", zap.String("id", id))
	return nil
}

// --- Cities ---

func (s *Service) CreateCities(ctx context.Context, in []model.CityInput) ([]model.City, error) {
	if len(in) == 0 {
		return nil, apperr.BadRequestf("at least one city is required")
	}
	batch := len(in) > 1

	rows := make([]model.City, 0, len(in))
	for i, item := range in {
		city := model.City{
			ID:        newID(),
			Name:      strings.TrimSpace(item.Name),
			Img:       strings.TrimSpace(item.Img),
			Climate:   strings.TrimSpace(item.Climate),
			CountryID: strings.TrimSpace(item.CountryID),
		}
		if err := required(
			field{"name", city.Name},
			field{"climate", city.Climate},
			field{"country_id", city.CountryID},
		); err != nil {
			return nil, itemErr(batch, i, err)
		}
		if err := cityLimits(city); err != nil {
			return nil, itemErr(batch, i, err)
		}
		rows = append(rows, city)
	}

	err := s.inTx(ctx, "create_cities", func(ctx context.Context, tx *sqlx.Tx) error {
		known := map[string]bool{}
		seen := map[string]bool{}
		for i, city := range rows {
			if !known[city.CountryID] {
				if _, found, err := s.repos.Country.Get(ctx, tx, city.CountryID); err != nil {
					return err
				} else if !found {
					return itemErr(batch, i, apperr.NotFoundf("country %s not found", city.CountryID))
				}
				known[city.CountryID] = true
			}
			if err := s.checkCityUnique(ctx, tx, city, seen); err != nil {
				return itemErr(batch, i, err)
			}
		}
		return s.repos.City.Insert(ctx, tx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cities: %w", err)
	}
	s.logger.Info("Cities created", zap.Int("count", len(rows)))
	return rows, nil
}

// checkCityUnique enforces (name, country_id) uniqueness against the store,
// excluding the city itself, and against earlier items of the same batch.
func (s *Service) checkCityUnique(ctx context.Context, tx *sqlx.Tx, city model.City, seen map[string]bool) error {
	key := pairKey(city.Name, city.CountryID)
	if seen[key] {
		return apperr.Conflictf("city %q is repeated for the same country", city.Name)
	}
	seen[key] = true

	existing, found, err := s.repos.City.FindByName(ctx, tx, city.Name, city.CountryID)
	if err != nil {
		return err
	}
	if found && existing.ID != city.ID {
		return apperr.Conflictf("city %q already exists in this country", city.Name)
	}
	return nil
}

func (s *Service) GetCity(ctx context.Context, id string) (model.City, error) {
	ctx, cancel := s.read(ctx)
	defer cancel()

	city, found, err := s.repos.City.Get(ctx, s.db(), id)
	if err != nil {
		return model.City{}, fmt.Errorf("failed to get city: %w", err)
	}
	if !found {
		return model.City{}, apperr.NotFoundf("city %s not found", id)
	}
	return city, nil
}

func (s *Service) ListCities(ctx context.Context, f model.CityFilter) ([]model.City, error) {
	ctx, cancel := s.read(ctx)
	defer cancel()

	cities, err := s.repos.City.List(ctx, s.db(), f)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

func (s *Service) UpdateCity(ctx context.Context, id string, patch model.CityPatch) (model.City, error) {
	var city model.City
	err := s.inTx(ctx, "update_city", func(ctx context.Context, tx *sqlx.Tx) error {
		current, found, err := s.repos.City.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFoundf("city %s not found", id)
		}

		renamed := patchString(&current.Name, patch.Name)
		patchString(&current.Img, patch.Img)
		patchString(&current.Climate, patch.Climate)
		moved := patchString(&current.CountryID, patch.CountryID)
		if err := cityLimits(current); err != nil {
			return err
		}

		if moved {
			if _, found, err := s.repos.Country.Get(ctx, tx, current.CountryID); err != nil {
				return err
			} else if !found {
				return apperr.NotFoundf("country %s not found", current.CountryID)
			}
		}
		if renamed || moved {
			if err := s.checkCityUnique(ctx, tx, current, map[string]bool{}); err != nil {
				return err
			}
		}
		city = current
		return s.repos.City.Update(ctx, tx, current)
	})
	if err != nil {
		return model.City{}, fmt.Errorf("failed to update city: %w", err)
	}
	return city, nil
}

// DeleteCity removes the city, its pois and their dependents.
func (s *Service) DeleteCity(ctx context.Context, id string) error {
	err := s.inTx(ctx, "delete_city", func(ctx context.Context, tx *sqlx.Tx) error {
		_, found, err := s.repos.City.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFoundf("city %s not found", id)
		}
		return s.repos.City.Delete(ctx, tx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete city: %w", err)
	}
	s.logger.Info("City deleted", zap.String("id", id))
	return nil
}

// --- Pois ---

func (s *Service) CreatePois(ctx context.Context, in []model.PoiInput) ([]model.Poi, error) {
	if len(in) == 0 {
		return nil, apperr.BadRequestf("at least one poi is required")
	}
	batch := len(in) > 1

	rows := make([]model.Poi, 0, len(in))
	for i, item := range in {
		poi, err := newPoi(item)
		if err != nil {
			return nil, itemErr(batch, i, err)
		}
		rows = append(rows, poi)
	}

	err := s.inTx(ctx, "create_pois", func(ctx context.Context, tx *sqlx.Tx) error {
		known := map[string]bool{}
		seen := map[string]bool{}
		for i, poi := range rows {
			if !known[poi.CityID] {
				if _, found, err := s.repos.City.Get(ctx, tx, poi.CityID); err != nil {
					return err
				} else if !found {
					return itemErr(batch, i, apperr.NotFoundf("city %s not found", poi.CityID))
				}
				known[poi.CityID] = true
			}
			if err := s.checkPoiUnique(ctx, tx, poi, seen); err != nil {
				return itemErr(batch, i, err)
			}
		}
		return s.repos.Poi.Insert(ctx, tx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pois: %w", err)
	}
	s.logger.Info("Pois created", zap.Int("count", len(rows)))
	return rows, nil
}

func newPoi(item model.PoiInput) (model.Poi, error) {
	poi := model.Poi{
		ID:          newID(),
		Name:        strings.TrimSpace(item.Name),
		Description: strings.TrimSpace(item.Description),
		Img:         strings.TrimSpace(item.Img),
		CityID:      strings.TrimSpace(item.CityID),
	}
	fields := []field{
		{"name", poi.Name},
		{"description", poi.Description},
		{"latitude", ""},
		{"longitude", ""},
		{"city_id", poi.CityID},
	}
	if item.Latitude != nil {
		fields[2].value = "set"
		poi.Latitude = *item.Latitude
	}
	if item.Longitude != nil {
		fields[3].value = "set"
		poi.Longitude = *item.Longitude
	}
	if err := required(fields...); err != nil {
		return model.Poi{}, err
	}
	if err := checkCoordinates(poi.Latitude, poi.Longitude); err != nil {
		return model.Poi{}, err
	}
	if err := poiLimits(poi); err != nil {
		return model.Poi{}, err
	}
	return poi, nil
}

// checkPoiUnique enforces (name, city_id) uniqueness like checkCityUnique.
func (s *Service) checkPoiUnique(ctx context.Context, tx *sqlx.Tx, poi model.Poi, seen map[string]bool) error {
	key := pairKey(poi.Name, poi.CityID)
	if seen[key] {
		return apperr.Conflictf("poi %q is repeated for the same city", poi.Name)
	}
	seen[key] = true

	existing, found, err := s.repos.Poi.FindByName(ctx, tx, poi.Name, poi.CityID)
	if err != nil {
		return err
	}
	if found && existing.ID != poi.ID {
		return apperr.Conflictf("poi %q already exists in this city", poi.Name)
	}
	return nil
}

func (s *Service) GetPoi(ctx context.Context, id string) (model.Poi, error) {
	ctx, cancel := s.read(ctx)
	defer cancel()

	poi, found, err := s.repos.Poi.Get(ctx, s.db(), id)
	if err != nil {
		return model.Poi{}, fmt.Errorf("failed to get poi: %w", err)
	}
	if !found {
		return model.Poi{}, apperr.NotFoundf("poi %s not found", id)
	}
	return poi, nil
}

func (s *Service) ListPois(ctx context.Context, f model.PoiFilter) ([]model.Poi, error) {
	ctx, cancel := s.read(ctx)
	defer cancel()

	pois, err := s.repos.Poi.List(ctx, s.db(), f)
	if err != nil {
		return nil, fmt.Errorf("failed to list pois: %w", err)
	}
	return pois, nil
}

// PopularPois returns a random sample of pois.
func (s *Service) PopularPois(ctx context.Context) ([]model.Poi, error) {
	ctx, cancel := s.read(ctx)
	defer cancel()

	pois, err := s.repos.Poi.Random(ctx, s.db(), popularSize)
	if err != nil {
		return nil, fmt.Errorf("failed to sample pois: %w", err)
	}
	return pois, nil
}

func (s *Service) UpdatePoi(ctx context.Context, id string, patch model.PoiPatch) (model.Poi, error) {
	var poi model.Poi
	err := s.inTx(ctx, "update_poi", func(ctx context.Context, tx *sqlx.Tx) error {
		current, found, err := s.repos.Poi.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFoundf("poi %s not found", id)
		}

		renamed := patchString(&current.Name, patch.Name)
		patchString(&current.Description, patch.Description)
		patchString(&current.Img, patch.Img)
		moved := patchString(&current.CityID, patch.CityID)
		if patch.Latitude != nil {
			current.Latitude = *patch.Latitude
		}
		if patch.Longitude != nil {
			current.Longitude = *patch.Longitude
		}
		if err := checkCoordinates(current.Latitude, current.Longitude); err != nil {
			return err
		}
		if err := poiLimits(current); err != nil {
			return err
		}

		if moved {
			if _, found, err := s.repos.City.Get(ctx, tx, current.CityID); err != nil {
				return err
			} else if !found {
				return apperr.NotFoundf("city %s not found", current.CityID)
			}
		}
		if renamed || moved {
			if err := s.checkPoiUnique(ctx, tx, current, map[string]bool{}); err != nil {
				return err
			}
		}
		poi = current
		return s.repos.Poi.Update(ctx, tx, current)
	})
	if err != nil {
		return model.Poi{}, fmt.Errorf("failed to update poi: %w", err)
	}
	return poi, nil
}

// DeletePoi removes the poi with its images, tag links and user relations.
func (s *Service) DeletePoi(ctx context.Context, id string) error {
	err := s.inTx(ctx, "delete_poi", func(ctx context.Context, tx *sqlx.Tx) error {
		_, found, err := s.repos.Poi.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFoundf("poi %s not found", id)
		}
		return s.repos.Poi.Delete(ctx, tx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete poi: %w", err)
	}
	s.logger.Info("Poi deleted", zap.String("id", id))
	return nil
}

// --- Poi images ---

func (s *Service) CreatePoiImages(ctx context.Context, in []model.PoiImageInput) ([]model.PoiImage, error) {
	if len(in) == 0 {
		return nil, apperr.BadRequestf("at least one image is required")
	}
	batch := len(in) > 1

	rows := make([]model.PoiImage, 0, len(in))
	for i, item := range in {
		img := model.PoiImage{ID: newID(), URL: strings.TrimSpace(item.URL), PoiID: strings.TrimSpace(item.PoiID)}
		if err := required(field{"url", img.URL}, field{"poi_id", img.PoiID}); err != nil {
			return nil, itemErr(batch, i, err)
		}
		if err := withinLimits(bounded{"url", img.URL, maxURL}); err != nil {
			return nil, itemErr(batch, i, err)
		}
		rows = append(rows, img)
	}

	err := s.inTx(ctx, "create_poi_images", func(ctx context.Context, tx *sqlx.Tx) error {
		known := map[string]bool{}
		for i, img := range rows {
			if known[img.PoiID] {
				continue
			}
			if _, found, err := s.repos.Poi.Get(ctx, tx, img.PoiID); err != nil {
				return err
			} else if !found {
				return itemErr(batch, i, apperr.NotFoundf("poi %s not found", img.PoiID))
			}
			known[img.PoiID] = true
		}
		return s.repos.PoiImage.Insert(ctx, tx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create poi images: %w", err)
	}
	return rows, nil
}

func (s *Service) GetPoiImage(ctx context.Context, id string) (model.PoiImage, error) {
	ctx, cancel := s.read(ctx)
	defer cancel()

	img, found, err := s.repos.PoiImage.Get(ctx, s.db(), id)
	if err != nil {
		return model.PoiImage{}, fmt.Errorf("failed to get poi image: %w", err)
	}
	if !found {
		return model.PoiImage{}, apperr.NotFoundf("poi image %s not found", id)
	}
	return img, nil
}

// ListPoiImages returns the images of an existing poi.
func (s *Service) ListPoiImages(ctx context.Context, poiID string) ([]model.PoiImage, error) {
	ctx, cancel := s.read(ctx)
	defer cancel()

	if _, found, err := s.repos.Poi.Get(ctx, s.db(), poiID); err != nil {
		return nil, fmt.Errorf("failed to get poi: %w", err)
	} else if !found {
		return nil, apperr.NotFoundf("poi %s not found", poiID)
	}
	images, err := s.repos.PoiImage.ListByPoi(ctx, s.db(), poiID)
	if err != nil {
		return nil, fmt.Errorf("failed to list poi images: %w", err)
	}
	return images, nil
}

func (s *Service) DeletePoiImage(ctx context.Context, id string) error {
	err := s.inTx(ctx, "delete_poi_image", func(ctx context.Context, tx *sqlx.Tx) error {
		_, found, err := s.repos.PoiImage.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFoundf("poi image %s not found", id)
		}
		return s.repos.PoiImage.Delete(ctx, tx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete poi image: %w", err)
	}
	return nil
}
