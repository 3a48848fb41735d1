package api

import (
	"net/http"

	"github.com/alexivanou/geotrip-api/internal/model"
	"github.com/gorilla/mux"
)

// Countries

// CreateCountries handles POST /api/countries
func (h *Handler) CreateCountries(w http.ResponseWriter, r *http.Request) {
	createBatch(h, w, r, h.service.CreateCountries)
}

// ListCountries handles GET /api/countries?name=
func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	f := model.CountryFilter{Name: r.URL.Query().Get("name")}
	countries, err := h.service.ListCountries(r.Context(), f)
	h.respond(w, r, http.StatusOK, countries, err)
}

func (h *Handler) GetCountry(w http.ResponseWriter, r *http.Request) {
	country, err := h.service.GetCountry(r.Context(), mux.Vars(r)["id"])
	h.respond(w, r, http.StatusOK, country, err)
}

func (h *Handler) UpdateCountry(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodeObject[model.CountryPatch](h, w, r)
	if !ok {
		return
	}
	country, err := h.service.UpdateCountry(r.Context(), mux.Vars(r)["id"], patch)
	h.respond(w, r, http.StatusOK, country, err)
}

func (h *Handler) DeleteCountry(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.service.DeleteCountry(r.Context(), mux.Vars(r)["id"]))
}

// Cities

// CreateCities handles POST /api/cities
func (h *Handler) CreateCities(w http.ResponseWriter, r *http.Request) {
	createBatch(h, w, r, h.service.CreateCities)
}

// ListCities handles GET /api/cities?name=&country_id=
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := model.CityFilter{Name: q.Get("name"), CountryID: q.Get("country_id")}
	cities, err := h.service.ListCities(r.Context(), f)
	h.respond(w, r, http.StatusOK, cities, err)
}

func (h *Handler) GetCity(w http.ResponseWriter, r *http.Request) {
	city, err := h.service.GetCity(r.Context(), mux.Vars(r)["id"])
	h.respond(w, r, http.StatusOK, city, err)
}

func (h *Handler) UpdateCity(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodeObject[model.CityPatch](h, w, r)
	if !ok {
		return
	}
	city, err := h.service.UpdateCity(r.Context(), mux.Vars(r)["id"], patch)
	h.respond(w, r, http.StatusOK, city, err)
}

func (h *Handler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.service.DeleteCity(r.Context(), mux.Vars(r)["id"]))
}

// Pois

// CreatePois handles POST /api/pois
func (h *Handler) CreatePois(w http.ResponseWriter, r *http.Request) {
	createBatch(h, w, r, h.service.CreatePois)
}

// ListPois handles GET /api/pois?name=&city_id=&country_id=&tag_id=
func (h *Handler) ListPois(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := model.PoiFilter{
		Name:      q.Get("name"),
		CityID:    q.Get("city_id"),
		CountryID: q.Get("country_id"),
		TagID:     q.Get("tag_id"),
	}
	pois, err := h.service.ListPois(r.Context(), f)
	h.respond(w, r, http.StatusOK, pois, err)
}

// PopularPois handles GET /api/popular-pois
func (h *Handler) PopularPois(w http.ResponseWriter, r *http.Request) {
	pois, err := h.service.PopularPois(r.Context())
	h.respond(w, r, http.StatusOK, pois, err)
}

func (h *Handler) GetPoi(w http.ResponseWriter, r *http.Request) {
	poi, err := h.service.GetPoi(r.Context(), mux.Vars(r)["id"])
	h.respond(w, r, http.StatusOK, poi, err)
}

func (h *Handler) UpdatePoi(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodeObject[model.PoiPatch](h, w, r)
	if !ok {
		return
	}
	poi, err := h.service.UpdatePoi(r.Context(), mux.Vars(r)["id"], patch)
	h.respond(w, r, http.StatusOK, poi, err)
}

func (h *Handler) DeletePoi(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.service.DeletePoi(r.Context(), mux.Vars(r)["id"]))
}

// Poi images

// ListPoiImages handles GET /api/pois/{id}/images
func (h *Handler) ListPoiImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.ListPoiImages(r.Context(), mux.Vars(r)["id"])
	h.respond(w, r, http.StatusOK, images, err)
}

// CreatePoiImages handles POST /api/poiimages
func (h *Handler) CreatePoiImages(w http.ResponseWriter, r *http.Request) {
	createBatch(h, w, r, h.service.CreatePoiImages)
}

func (h *Handler) GetPoiImage(w http.ResponseWriter, r *http.Request) {
	img, err := h.service.GetPoiImage(r.Context(), mux.Vars(r)["id"])
	h.respond(w, r, http.StatusOK, img, err)
}

func (h *Handler) DeletePoiImage(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.service.DeletePoiImage(r.Context(), mux.Vars(r)["id"]))
}
