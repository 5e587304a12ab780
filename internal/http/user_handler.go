package http

import (
	"encoding/json"
	"net/http"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/pkg/logger"
)

type UserHandler struct {
	service domain.UserServiceInterface
	logger  logger.Logger
}

func NewUserHandler(service domain.UserServiceInterface, logger logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, secure func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("POST /api/v1/users", secure(h.handleCreate))
	mux.HandleFunc("GET /api/v1/users", secure(h.handleList))
}

func (h *UserHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		if _, ok := err.(*domain.ErrUserExists); ok {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to create user")
		WriteJSONError(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) handleList(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)

	users, err := h.service.ListUsers(r.Context(), skip, limit)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list users")
		WriteJSONError(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
