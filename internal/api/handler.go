package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/alexivanou/geotrip-api/internal/apperr"
	"github.com/alexivanou/geotrip-api/internal/service"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Handler handles HTTP requests
type Handler struct {
	service service.ServiceInterface
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var statusByKind = map[apperr.Kind]int{
	apperr.BadRequest:   http.StatusBadRequest,
	apperr.Unauthorized: http.StatusUnauthorized,
	apperr.Forbidden:    http.StatusForbidden,
	apperr.NotFound:     http.StatusNotFound,
	apperr.Conflict:     http.StatusConflict,
	apperr.Internal:     http.StatusInternalServerError,
}

func statusOf(kind apperr.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	if err := writeJSON(w, status, v); err != nil {
		h.logger.Error("Error encoding response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		h.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	h.writeJSON(w, statusOf(kind), ErrorResponse{Error: string(kind), Message: apperr.MessageOf(err)})
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.BadRequestf("request body exceeds %d bytes", maxBodyBytes)
		}
		return nil, apperr.BadRequestf("failed to read request body")
	}
	return body, nil
}

// decodeObject reads a single strict JSON object from the request.
func decodeObject[T any](h *Handler, w http.ResponseWriter, r *http.Request) (T, bool) {
	var zero T
	body, err := h.readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return zero, false
	}
	v, err := service.DecodeObject[T](body)
	if err != nil {
		h.writeError(w, r, err)
		return zero, false
	}
	return v, true
}

// createBatch decodes an object or array of In, runs create and answers with
// an object or array matching the request shape.
func createBatch[In, Out any](
	h *Handler,
	w http.ResponseWriter,
	r *http.Request,
	create func(ctx context.Context, in []In) ([]Out, error),
) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	items, isBatch, err := service.DecodeBatch[In](body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out, err := create(r.Context(), items)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if isBatch {
		h.writeJSON(w, http.StatusCreated, out)
		return
	}
	h.writeJSON(w, http.StatusCreated, out[0])
}

// respond writes v or the error.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, v interface{}, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, status, v)
}

func (h *Handler) noContent(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// NotFound answers unknown routes with the JSON error shape.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: string(apperr.NotFound), Message: "route not found"})
}
