package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"food-fridge/internal/middleware"
	"food-fridge/internal/model"
	"food-fridge/internal/service"

	"github.com/rs/zerolog"
)

// SessionTTL is how long the browser keeps the session cookie.
const SessionTTL = 7 * 24 * time.Hour

// AuthHandler handles session cookie issuance.
type AuthHandler struct {
	service      service.AuthService
	cookieSecure bool
	logger       zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, cookieSecure bool, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:      service,
		cookieSecure: cookieSecure,
		logger:       logger.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /auth/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token any `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !present(body.Token) {
		writeError(w, http.StatusBadRequest, model.ErrTokenRequired.Message, h.logger)
		return
	}

	// A present token that is not a string can never verify
	token, ok := body.Token.(string)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token", h.logger)
		return
	}

	req := model.LoginRequest{Token: token}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrTokenRequired.Message, h.logger)
		return
	}

	identity, err := h.service.Login(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, model.ErrTokenRequired) {
			writeError(w, http.StatusBadRequest, model.ErrTokenRequired.Message, h.logger)
			return
		}
		writeError(w, http.StatusUnauthorized, "Invalid token", h.logger)
		return
	}

	http.SetCookie(w, h.cookie(req.Token, int(SessionTTL/time.Second)))
	writeJSON(w, http.StatusOK, model.LoginResponse{Success: true, Email: identity.Email})
}

// Logout handles POST /auth/logout requests.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookie("", -1))
	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true})
}

// present reports whether a decoded JSON value counts as a supplied token:
// anything but null, false, 0 and "".
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteNoneMode,
	}
}
