package handler

import (
	"errors"
	"net/http"

	"food-fridge/internal/middleware"
	"food-fridge/internal/model"
	"food-fridge/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// FoodHandler handles food-related HTTP requests.
type FoodHandler struct {
	service service.FoodService
	logger  zerolog.Logger
}

// NewFoodHandler creates a new food handler.
func NewFoodHandler(service service.FoodService, logger zerolog.Logger) *FoodHandler {
	return &FoodHandler{
		service: service,
		logger:  logger.With().Str("handler", "food").Logger(),
	}
}

// Create handles POST /foods requests.
func (h *FoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	item, err := decodeItem(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrInvalidBody.Message, h.logger)
		return
	}

	result, err := h.service.Create(r.Context(), item, h.email(r))
	if err != nil {
		if errors.Is(err, model.ErrMissingOwner) {
			writeError(w, http.StatusBadRequest, model.ErrMissingOwner.Message, h.logger)
			return
		}
		h.logger.Error().Err(err).Msg("create failed")
		writeError(w, http.StatusInternalServerError, "Failed to add food", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// ListAll handles GET /foods requests.
func (h *FoodHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list failed")
		writeError(w, http.StatusInternalServerError, "Failed to get food items", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// ListOwned handles GET /user-foods requests.
func (h *FoodHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListOwned(r.Context(), h.email(r))
	if err != nil {
		h.logger.Error().Err(err).Msg("list owned failed")
		writeError(w, http.StatusInternalServerError, "Failed to get user's food items", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// GetByID handles GET /foods/{id} requests.
func (h *FoodHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidID):
			writeError(w, http.StatusBadRequest, model.ErrInvalidID.Message, h.logger)
		case errors.Is(err, model.ErrFoodNotFound):
			writeError(w, http.StatusNotFound, model.ErrFoodNotFound.Message, h.logger)
		default:
			h.logger.Error().Err(err).Msg("get failed")
			writeError(w, http.StatusInternalServerError, "Failed to get food", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /foods/{id} requests.
func (h *FoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), h.email(r))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidID):
			writeError(w, http.StatusBadRequest, model.ErrInvalidID.Message, h.logger)
		case errors.Is(err, model.ErrNotDeleted):
			writeJSON(w, http.StatusNotFound, model.StatusResponse{Message: model.ErrNotDeleted.Message})
		default:
			h.logger.Error().Err(err).Msg("delete failed")
			writeError(w, http.StatusInternalServerError, "Failed to delete food", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Update handles PUT /foods/{id} requests.
func (h *FoodHandler) Update(w http.ResponseWriter, r *http.Request) {
	patch, err := decodeItem(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrInvalidBody.Message, h.logger)
		return
	}

	err = h.service.Update(r.Context(), chi.URLParam(r, "id"), h.email(r), patch)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidID):
			writeError(w, http.StatusBadRequest, model.ErrInvalidID.Message, h.logger)
		case errors.Is(err, model.ErrNotModified):
			writeJSON(w, http.StatusNotFound, model.StatusResponse{Message: model.ErrNotModified.Message})
		default:
			h.logger.Error().Err(err).Msg("update failed")
			writeError(w, http.StatusInternalServerError, "Failed to update food", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "Food updated"})
}

// email returns the acting identity's email, or "" on unauthenticated routes.
func (h *FoodHandler) email(r *http.Request) string {
	if identity, ok := middleware.IdentityFrom(r.Context()); ok {
		return identity.Email
	}
	return ""
}
