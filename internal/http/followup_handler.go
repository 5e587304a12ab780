package http

import (
	"encoding/json"
	"net/http"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/pkg/logger"
)

type FollowUpHandler struct {
	service domain.FollowUpServiceInterface
	logger  logger.Logger
}

func NewFollowUpHandler(service domain.FollowUpServiceInterface, logger logger.Logger) *FollowUpHandler {
	return &FollowUpHandler{
		service: service,
		logger:  logger,
	}
}

func (h *FollowUpHandler) RegisterRoutes(mux *http.ServeMux, secure func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("POST /api/v1/leads/{id}/followups", secure(h.handleCreate))
	mux.HandleFunc("GET /api/v1/leads/{id}/followups", secure(h.handleList))
	mux.HandleFunc("PATCH /api/v1/followups/{id}", secure(h.handleUpdate))
}

func (h *FollowUpHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	leadID, err := pathID(r, "id")
	if err != nil {
		WriteJSONError(w, "Invalid lead ID", http.StatusBadRequest)
		return
	}

	var req domain.CreateFollowUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	followUp, err := h.service.CreateFollowUp(r.Context(), leadID, &req)
	if err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			WriteJSONError(w, "Lead not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to create followup")
		WriteJSONError(w, "Failed to create followup", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, followUp)
}

func (h *FollowUpHandler) handleList(w http.ResponseWriter, r *http.Request) {
	leadID, err := pathID(r, "id")
	if err != nil {
		WriteJSONError(w, "Invalid lead ID", http.StatusBadRequest)
		return
	}

	skip, limit := pagination(r)

	followUps, err := h.service.ListFollowUps(r.Context(), leadID, skip, limit)
	if err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			WriteJSONError(w, "Lead not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to list followups")
		WriteJSONError(w, "Failed to list followups", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, followUps)
}

func (h *FollowUpHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteJSONError(w, "Invalid followup ID", http.StatusBadRequest)
		return
	}

	var req domain.UpdateFollowUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	followUp, err := h.service.UpdateFollowUp(r.Context(), id, &req)
	if err != nil {
		if _, ok := err.(*domain.ErrFollowUpNotFound); ok {
			WriteJSONError(w, "Followup not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to update followup")
		WriteJSONError(w, "Failed to update followup", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, followUp)
}
