package api

import (
	"net/http"

	"github.com/alexivanou/geotrip-api/internal/model"
	"github.com/alexivanou/geotrip-api/internal/service"
	"github.com/gorilla/mux"
)

// Register handles POST /api/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeObject[model.RegisterInput](h, w, r)
	if !ok {
		return
	}
	user, err := h.service.Register(r.Context(), in)
	h.respond(w, r, http.StatusCreated, user, err)
}

// Login handles POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeObject[model.LoginInput](h, w, r)
	if !ok {
		return
	}
	resp, err := h.service.Login(r.Context(), in)
	h.respond(w, r, http.StatusOK, resp, err)
}

// GetProfile handles GET /api/myProfile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())
	user, err := h.service.GetProfile(r.Context(), p.UserID)
	h.respond(w, r, http.StatusOK, user, err)
}

// UpdateProfile handles PUT /api/myProfile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodeObject[model.ProfilePatch](h, w, r)
	if !ok {
		return
	}
	p, _ := principalFrom(r.Context())
	user, err := h.service.UpdateProfile(r.Context(), p.UserID, patch)
	h.respond(w, r, http.StatusOK, user, err)
}

// ListUsers handles GET /api/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	h.respond(w, r, http.StatusOK, users, err)
}

// CreateUsers handles POST /api/users
func (h *Handler) CreateUsers(w http.ResponseWriter, r *http.Request) {
	createBatch(h, w, r, h.service.CreateUsers)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.service.DeleteUser(r.Context(), mux.Vars(r)["id"]))
}

// ListRelation handles GET /api/favorites and /api/visited
func (h *Handler) ListRelation(rel service.Relation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := principalFrom(r.Context())
		pois, err := h.service.ListRelation(r.Context(), rel, p.UserID)
		h.respond(w, r, http.StatusOK, pois, err)
	}
}

// AddRelation handles POST /api/favorites and /api/visited
func (h *Handler) AddRelation(rel service.Relation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeObject[model.RelationInput](h, w, r)
		if !ok {
			return
		}
		p, _ := principalFrom(r.Context())
		poi, err := h.service.AddRelation(r.Context(), rel, p.UserID, in)
		h.respond(w, r, http.StatusCreated, poi, err)
	}
}

// RemoveRelation handles DELETE /api/favorites/{poi_id} and /api/visited/{poi_id}
func (h *Handler) RemoveRelation(rel service.Relation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := principalFrom(r.Context())
		h.noContent(w, r, h.service.RemoveRelation(r.Context(), rel, p.UserID, mux.Vars(r)["poi_id"]))
	}
}
