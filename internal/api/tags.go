package api

import (
	"net/http"

	"github.com/alexivanou/geotrip-api/internal/model"
	"github.com/gorilla/mux"
)

// CreateTags handles POST /api/tags
func (h *Handler) CreateTags(w http.ResponseWriter, r *http.Request) {
	createBatch(h, w, r, h.service.CreateTags)
}

// ListTags handles GET /api/tags?name=
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.ListTags(r.Context(), model.TagFilter{Name: r.URL.Query().Get("name")})
	h.respond(w, r, http.StatusOK, tags, err)
}

func (h *Handler) GetTag(w http.ResponseWriter, r *http.Request) {
	tag, err := h.service.GetTag(r.Context(), mux.Vars(r)["id"])
	h.respond(w, r, http.StatusOK, tag, err)
}

func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.service.DeleteTag(r.Context(), mux.Vars(r)["id"]))
}

// TagsOfPoi handles GET /api/pois/{poi_id}/tags
func (h *Handler) TagsOfPoi(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.TagsOfPoi(r.Context(), mux.Vars(r)["poi_id"])
	h.respond(w, r, http.StatusOK, tags, err)
}

// TagPoi handles POST /api/pois/{poi_id}/tags/{tag_id}
func (h *Handler) TagPoi(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	link, err := h.service.TagPoi(r.Context(), vars["poi_id"], vars["tag_id"])
	h.respond(w, r, http.StatusCreated, link, err)
}

// UntagPoi handles DELETE /api/pois/{poi_id}/tags/{tag_id}
func (h *Handler) UntagPoi(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.noContent(w, r, h.service.UntagPoi(r.Context(), vars["poi_id"], vars["tag_id"]))
}
