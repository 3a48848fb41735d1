package api

import (
	"net/http"

	"github.com/alexivanou/geotrip-api/internal/apperr"
	"github.com/alexivanou/geotrip-api/internal/stats"
	"go.uber.org/zap"
)

// StatsHandler handles statistics requests
type StatsHandler struct {
	collector *stats.Collector
	logger    *zap.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(collector *stats.Collector, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{collector: collector, logger: logger}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.collector.Collect(r.Context())
	if err != nil {
		h.logger.Error("Error collecting statistics", zap.Error(err))
		_ = writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   string(apperr.Internal),
			Message: "failed to collect statistics",
		})
		return
	}
	if err := writeJSON(w, http.StatusOK, s); err != nil {
		h.logger.Error("Error encoding statistics", zap.Error(err))
	}
}
