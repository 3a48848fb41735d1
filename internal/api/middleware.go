package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexivanou/geotrip-api/internal/apperr"
	"github.com/alexivanou/geotrip-api/internal/model"
	"github.com/alexivanou/geotrip-api/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type principalKey struct{}

// principalFrom returns the caller set by requireAuth.
func principalFrom(ctx context.Context) (service.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(service.Principal)
	return p, ok
}

// requireAuth rejects requests without a valid bearer token.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		scheme, raw, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			h.writeError(w, r, apperr.New(apperr.Unauthorized, "missing bearer token"))
			return
		}

		p, err := h.service.Authenticate(strings.TrimSpace(raw))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, p)))
	}
}

// requireAdmin is requireAuth restricted to the admin role. The stored role
// is authoritative, so a demoted or deleted admin loses access before the
// token expires.
func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return h.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		p, _ := principalFrom(r.Context())
		if p.Role != model.RoleAdmin {
			h.writeError(w, r, apperr.New(apperr.Forbidden, "admin role required"))
			return
		}

		user, err := h.service.GetProfile(r.Context(), p.UserID)
		if apperr.Is(err, apperr.NotFound) {
			h.writeError(w, r, apperr.New(apperr.Unauthorized, "account no longer exists"))
			return
		}
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if user.Role != model.RoleAdmin {
			h.writeError(w, r, apperr.New(apperr.Forbidden, "admin role required"))
			return
		}
		next(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// requestLogger logs every request at debug level.
func requestLogger(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Debug("Request served",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
