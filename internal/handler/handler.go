package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"food-fridge/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var validate = validator.New()

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to tell the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// decodeItem decodes a JSON object body. Arrays, scalars, null and trailing
// data after the object are rejected.
func decodeItem(r *http.Request) (model.FoodItem, error) {
	var item model.FoodItem
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&item); err != nil {
		return nil, model.ErrInvalidBody
	}
	if item == nil {
		return nil, model.ErrInvalidBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, model.ErrInvalidBody
	}
	return item, nil
}
