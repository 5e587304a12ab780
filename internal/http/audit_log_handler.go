package http

import (
	"net/http"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/pkg/logger"
)

type AuditLogHandler struct {
	service domain.AuditLogServiceInterface
	logger  logger.Logger
}

func NewAuditLogHandler(service domain.AuditLogServiceInterface, logger logger.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AuditLogHandler) RegisterRoutes(mux *http.ServeMux, secure func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("GET /api/v1/audit-logs", secure(h.handleList))
}

func (h *AuditLogHandler) handleList(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)

	logs, err := h.service.ListAuditLogs(r.Context(), skip, limit)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list audit logs")
		WriteJSONError(w, "Failed to list audit logs", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, logs)
}
