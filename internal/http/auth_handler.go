package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/internal/service"
	"github.com/catertrack/catertrack/pkg/logger"
)

type AuthHandler struct {
	service domain.AuthServiceInterface
	logger  logger.Logger
}

func NewAuthHandler(service domain.AuthServiceInterface, logger logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the login endpoint. It is the only route that
// does not go through the auth middleware.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/auth.login", h.handleLogin)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrTooManyLoginAttempts) {
			WriteJSONError(w, err.Error(), http.StatusTooManyRequests)
			return
		}
		if _, ok := err.(*domain.ErrInvalidCredentials); ok {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to log in user")
		WriteJSONError(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
