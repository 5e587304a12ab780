package http

import (
	"io"
	"net/http"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/pkg/logger"
)

// maxUploadBytes caps a single attachment upload.
const maxUploadBytes = 10 << 20

type AttachmentHandler struct {
	service domain.AttachmentServiceInterface
	logger  logger.Logger
}

func NewAttachmentHandler(service domain.AttachmentServiceInterface, logger logger.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AttachmentHandler) RegisterRoutes(mux *http.ServeMux, secure func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("POST /api/v1/leads/{id}/attachments", secure(h.handleUpload))
	mux.HandleFunc("GET /api/v1/leads/{id}/attachments", secure(h.handleList))
	mux.HandleFunc("DELETE /api/v1/attachments/{id}", secure(h.handleDelete))
}

func (h *AttachmentHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	leadID, err := pathID(r, "id")
	if err != nil {
		WriteJSONError(w, "Invalid lead ID", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteJSONError(w, "Invalid multipart body", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, "Missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := domain.ValidateAttachmentFilename(header.Filename); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		WriteJSONError(w, "Failed to read uploaded file", http.StatusBadRequest)
		return
	}

	attachment, err := h.service.UploadAttachment(r.Context(), leadID, header.Filename, content)
	if err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			WriteJSONError(w, "Lead not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to upload attachment")
		WriteJSONError(w, "Failed to upload attachment", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, attachment)
}

func (h *AttachmentHandler) handleList(w http.ResponseWriter, r *http.Request) {
	leadID, err := pathID(r, "id")
	if err != nil {
		WriteJSONError(w, "Invalid lead ID", http.StatusBadRequest)
		return
	}

	attachments, err := h.service.ListAttachments(r.Context(), leadID)
	if err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			WriteJSONError(w, "Lead not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to list attachments")
		WriteJSONError(w, "Failed to list attachments", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, attachments)
}

func (h *AttachmentHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteJSONError(w, "Invalid attachment ID", http.StatusBadRequest)
		return
	}

	attachment, err := h.service.DeleteAttachment(r.Context(), id)
	if err != nil {
		if _, ok := err.(*domain.ErrAttachmentNotFound); ok {
			WriteJSONError(w, "Attachment not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to delete attachment")
		WriteJSONError(w, "Failed to delete attachment", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, attachment)
}
