package http

import (
	"encoding/json"
	"net/http"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/pkg/logger"
)

type ActivityHandler struct {
	service domain.ActivityServiceInterface
	logger  logger.Logger
}

func NewActivityHandler(service domain.ActivityServiceInterface, logger logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger,
	}
}

func (h *ActivityHandler) RegisterRoutes(mux *http.ServeMux, secure func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("POST /api/v1/leads/{id}/activities", secure(h.handleCreate))
	mux.HandleFunc("GET /api/v1/leads/{id}/activities", secure(h.handleList))
}

func (h *ActivityHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	leadID, err := pathID(r, "id")
	if err != nil {
		WriteJSONError(w, "Invalid lead ID", http.StatusBadRequest)
		return
	}

	var req domain.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	activity, err := h.service.CreateActivity(r.Context(), leadID, &req)
	if err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			WriteJSONError(w, "Lead not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to create activity")
		WriteJSONError(w, "Failed to create activity", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, activity)
}

func (h *ActivityHandler) handleList(w http.ResponseWriter, r *http.Request) {
	leadID, err := pathID(r, "id")
	if err != nil {
		WriteJSONError(w, "Invalid lead ID", http.StatusBadRequest)
		return
	}

	skip, limit := pagination(r)

	activities, err := h.service.ListActivities(r.Context(), leadID, skip, limit)
	if err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			WriteJSONError(w, "Lead not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to list activities")
		WriteJSONError(w, "Failed to list activities", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, activities)
}
