package http

import (
	"encoding/json"
	"net/http"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/pkg/logger"
)

type LeadHandler struct {
	service domain.LeadServiceInterface
	logger  logger.Logger
}

func NewLeadHandler(service domain.LeadServiceInterface, logger logger.Logger) *LeadHandler {
	return &LeadHandler{
		service: service,
		logger:  logger,
	}
}

func (h *LeadHandler) RegisterRoutes(mux *http.ServeMux, secure func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("POST /api/v1/leads", secure(h.handleCreate))
	mux.HandleFunc("GET /api/v1/leads", secure(h.handleList))
	mux.HandleFunc("GET /api/v1/leads/{id}", secure(h.handleGet))
	mux.HandleFunc("PATCH /api/v1/leads/{id}", secure(h.handleUpdate))
	mux.HandleFunc("DELETE /api/v1/leads/{id}", secure(h.handleDelete))
}

func (h *LeadHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	lead, err := h.service.CreateLead(r.Context(), &req)
	if err != nil {
		if _, ok := err.(*domain.ErrPhoneExists); ok {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to create lead")
		WriteJSONError(w, "Failed to create lead", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) handleList(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)

	leads, err := h.service.ListLeads(r.Context(), skip, limit)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list leads")
		WriteJSONError(w, "Failed to list leads", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteJSONError(w, "Invalid lead ID", http.StatusBadRequest)
		return
	}

	lead, err := h.service.GetLeadByID(r.Context(), id)
	if err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			WriteJSONError(w, "Lead not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to get lead")
		WriteJSONError(w, "Failed to get lead", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteJSONError(w, "Invalid lead ID", http.StatusBadRequest)
		return
	}

	var req domain.UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	lead, err := h.service.UpdateLead(r.Context(), id, &req)
	if err != nil {
		switch err.(type) {
		case *domain.ErrLeadNotFound:
			WriteJSONError(w, "Lead not found", http.StatusNotFound)
		case *domain.ErrPhoneExists:
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.WithField("error", err.Error()).Error("Failed to update lead")
			WriteJSONError(w, "Failed to update lead", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteJSONError(w, "Invalid lead ID", http.StatusBadRequest)
		return
	}

	lead, err := h.service.DeleteLead(r.Context(), id)
	if err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			WriteJSONError(w, "Lead not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to delete lead")
		WriteJSONError(w, "Failed to delete lead", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}
