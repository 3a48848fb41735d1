package api

import (
	"net/http"

	"github.com/alexivanou/geotrip-api/internal/service"
	"github.com/alexivanou/geotrip-api/internal/stats"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router
func NewRouter(svc service.ServiceInterface, statsCollector *stats.Collector, logger *zap.Logger) *mux.Router {
	handler := NewHandler(svc, logger)
	statsHandler := NewStatsHandler(statsCollector, logger)

	router := mux.NewRouter()
	router.Use(requestLogger(logger))
	router.NotFoundHandler = http.HandlerFunc(handler.NotFound)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	// Identity
	api.HandleFunc("/register", handler.Register).Methods("POST")
	api.HandleFunc("/login", handler.Login).Methods("POST")
	api.HandleFunc("/myProfile", handler.requireAuth(handler.GetProfile)).Methods("GET")
	api.HandleFunc("/myProfile", handler.requireAuth(handler.UpdateProfile)).Methods("PUT")
	api.HandleFunc("/users", handler.requireAdmin(handler.ListUsers)).Methods("GET")
	api.HandleFunc("/users", handler.requireAdmin(handler.CreateUsers)).Methods("POST")
	api.HandleFunc("/users/{id}", handler.requireAdmin(handler.DeleteUser)).Methods("DELETE")

	// Catalog
	api.HandleFunc("/countries", handler.ListCountries).Methods("GET")
	api.HandleFunc("/countries", handler.CreateCountries).Methods("POST")
	api.HandleFunc("/countries/{id}", handler.GetCountry).Methods("GET")
	api.HandleFunc("/countries/{id}", handler.UpdateCountry).Methods("PUT")
	api.HandleFunc("/countries/{id}", handler.DeleteCountry).Methods("DELETE")

	api.HandleFunc("/cities", handler.ListCities).Methods("GET")
	api.HandleFunc("/cities", handler.CreateCities).Methods("POST")
	api.HandleFunc("/cities/{id}", handler.GetCity).Methods("GET")
	api.HandleFunc("/cities/{id}", handler.UpdateCity).Methods("PUT")
	api.HandleFunc("/cities/{id}", handler.DeleteCity).Methods("DELETE")

	api.HandleFunc("/pois", handler.ListPois).Methods("GET")
	api.HandleFunc("/pois", handler.CreatePois).Methods("POST")
	api.HandleFunc("/pois/{id}", handler.GetPoi).Methods("GET")
	api.HandleFunc("/pois/{id}", handler.UpdatePoi).Methods("PUT")
	api.HandleFunc("/pois/{id}", handler.DeletePoi).Methods("DELETE")
	api.HandleFunc("/pois/{id}/images", handler.ListPoiImages).Methods("GET")
	api.HandleFunc("/popular-pois", handler.PopularPois).Methods("GET")

	api.HandleFunc("/poiimages", handler.CreatePoiImages).Methods("POST")
	api.HandleFunc("/poiimages/{id}", handler.GetPoiImage).Methods("GET")
	api.HandleFunc("/poiimages/{id}", handler.DeletePoiImage).Methods("DELETE")

	// Tags
	api.HandleFunc("/tags", handler.ListTags).Methods("GET")
	api.HandleFunc("/tags", handler.CreateTags).Methods("POST")
	api.HandleFunc("/tags/{id}", handler.GetTag).Methods("GET")
	api.HandleFunc("/tags/{id}", handler.DeleteTag).Methods("DELETE")
	api.HandleFunc("/pois/{poi_id}/tags", handler.TagsOfPoi).Methods("GET")
	api.HandleFunc("/pois/{poi_id}/tags/{tag_id}", handler.TagPoi).Methods("POST")
	api.HandleFunc("/pois/{poi_id}/tags/{tag_id}", handler.UntagPoi).Methods("DELETE")

	// User relations
	for _, rel := range []service.Relation{service.Favorites, service.Visited} {
		path := "/" + string(rel)
		api.HandleFunc(path, handler.requireAuth(handler.ListRelation(rel))).Methods("GET")
		api.HandleFunc(path, handler.requireAuth(handler.AddRelation(rel))).Methods("POST")
		api.HandleFunc(path+"/{poi_id}", handler.requireAuth(handler.RemoveRelation(rel))).Methods("DELETE")
	}

	return router
}
