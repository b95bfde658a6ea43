package handler

import (
	"net/http"

	"food-fridge/internal/service"

	"github.com/rs/zerolog"
)

// HealthHandler reports liveness and store readiness.
type HealthHandler struct {
	service service.FoodService
	logger  zerolog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service service.FoodService, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With().Str("handler", "health").Logger(),
	}
}

// Root handles GET / requests.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Server is running"))
}

// Health handles GET /health requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ready(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("store unavailable")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
