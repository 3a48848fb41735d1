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

// importPlan holds the rows of a catalog after validation.
type importPlan struct {
	countries []model.Country
	cities    []model.City
	pois      []model.Poi
	images    []model.PoiImage
	tagNames  []string
	poiTags   map[string][]string // poi id -> tag names
}

// ImportCatalog writes a whole nested catalog in one transaction. Tags are
// matched by name; missing ones are created.
func (s *Service) ImportCatalog(ctx context.Context, cat model.Catalog) (model.ImportSummary, error) {
	plan, err := s.planImport(cat)
	if err != nil {
		return model.ImportSummary{}, err
	}

	var summary model.ImportSummary
	err = s.inTx(ctx, "import_catalog", func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.repos.Country.Insert(ctx, tx, plan.countries); err != nil {
			return err
		}

		seen := map[string]bool{}
		for _, city := range plan.cities {
			if err := s.checkCityUnique(ctx, tx, city, seen); err != nil {
				return err
			}
		}
		if err := s.repos.City.Insert(ctx, tx, plan.cities); err != nil {
			return err
		}

		seen = map[string]bool{}
		for _, poi := range plan.pois {
			if err := s.checkPoiUnique(ctx, tx, poi, seen); err != nil {
				return err
			}
		}
		if err := s.repos.Poi.Insert(ctx, tx, plan.pois); err != nil {
			return err
		}
		if err := s.repos.PoiImage.Insert(ctx, tx, plan.images); err != nil {
			return err
		}

		tagIDs, created, err := s.resolveTags(ctx, tx, plan.tagNames)
		if err != nil {
			return err
		}
		var links []model.PoiTag
		for _, poi := range plan.pois {
			for _, name := range plan.poiTags[poi.ID] {
				links = append(links, model.PoiTag{PoiID: poi.ID, TagID: tagIDs[name]})
			}
		}
		if err := s.repos.Tag.Link(ctx, tx, links); err != nil {
			return err
		}

		summary = model.ImportSummary{
			Countries: len(plan.countries),
			Cities:    len(plan.cities),
			Pois:      len(plan.pois),
			Images:    len(plan.images),
			Tags:      created,
			Links:     len(links),
		}
		return nil
	})
	if err != nil {
		return model.ImportSummary{}, fmt.Errorf("failed to import catalog: %w", err)
	}
	s.logger.Info("Catalog imported",
		zap.Int("countries", summary.Countries),
		zap.Int("cities", summary.Cities),
		zap.Int("pois", summary.Pois),
		zap.Int("tags", summary.Tags),
	)
	return summary, nil
}

func (s *Service) planImport(cat model.Catalog) (importPlan, error) {
	plan := importPlan{poiTags: map[string][]string{}}
	tagSet := map[string]bool{}
	addTag := func(name string) string {
		name = strings.TrimSpace(name)
		if name != "" && !tagSet[name] {
			tagSet[name] = true
			plan.tagNames = append(plan.tagNames, name)
		}
		return name
	}
	for _, name := range cat.Tags {
		addTag(name)
	}

	for ci, c := range cat.Countries {
		country := model.Country{ID: newID(), Name: strings.TrimSpace(c.Name), Img: strings.TrimSpace(c.Img)}
		if err := required(field{"name", country.Name}); err != nil {
			return plan, apperr.BadRequestf("country %d: %s", ci, apperr.MessageOf(err))
		}
		if err := countryLimits(country); err != nil {
			return plan, apperr.BadRequestf("country %d: %s", ci, apperr.MessageOf(err))
		}
		plan.countries = append(plan.countries, country)

		for ti, t := range c.Cities {
			city := model.City{
				ID:        newID(),
				Name:      strings.TrimSpace(t.Name),
				Img:       strings.TrimSpace(t.Img),
				Climate:   strings.TrimSpace(t.Climate),
				CountryID: country.ID,
			}
			if err := required(field{"name", city.Name}, field{"climate", city.Climate}); err != nil {
				return plan, apperr.BadRequestf("country %q city %d: %s", country.Name, ti, apperr.MessageOf(err))
			}
			if err := cityLimits(city); err != nil {
				return plan, apperr.BadRequestf("country %q city %d: %s", country.Name, ti, apperr.MessageOf(err))
			}
			plan.cities = append(plan.cities, city)

			for pi, p := range t.Pois {
				poi, err := newPoi(model.PoiInput{
					Name:        p.Name,
					Description: p.Description,
					Latitude:    p.Latitude,
					Longitude:   p.Longitude,
					Img:         p.Img,
					CityID:      city.ID,
				})
				if err != nil {
					return plan, apperr.BadRequestf("city %q poi %d: %s", city.Name, pi, apperr.MessageOf(err))
				}
				plan.pois = append(plan.pois, poi)

				for _, url := range p.Images {
					if url = strings.TrimSpace(url); url != "" {
						plan.images = append(plan.images, model.PoiImage{ID: newID(), URL: url, PoiID: poi.ID})
					}
				}
				linked := map[string]bool{}
				for _, name := range p.Tags {
					if name = addTag(name); name != "" && !linked[name] {
						linked[name] = true
						plan.poiTags[poi.ID] = append(plan.poiTags[poi.ID], name)
					}
				}
			}
		}
	}
	for _, name := range plan.tagNames {
		if err := withinLimits(bounded{"tag name", name, maxTagName}); err != nil {
			return plan, err
		}
	}
	for _, img := range plan.images {
		if err := withinLimits(bounded{"image url", img.URL, maxURL}); err != nil {
			return plan, err
		}
	}
	return plan, nil
}

// resolveTags maps every name to a tag id, inserting the unknown ones.
func (s *Service) resolveTags(ctx context.Context, tx *sqlx.Tx, names []string) (map[string]string, int, error) {
	ids := make(map[string]string, len(names))
	var fresh []model.Tag
	for _, name := range names {
		tag, found, err := s.repos.Tag.FindByName(ctx, tx, name)
		if err != nil {
			return nil, 0, err
		}
		if !found {
			tag = model.Tag{ID: newID(), Name: name}
			fresh = append(fresh, tag)
		}
		ids[name] = tag.ID
	}
	if err := s.repos.Tag.Insert(ctx, tx, fresh); err != nil {
		return nil, 0, err
	}
	return ids, len(fresh), nil
}
