package document

import (
	"doc-intake/internal/core/port"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 document routes
type HandlerV1 struct {
	documentService port.DocumentService
	logger          *slog.Logger
}

// NewDocumentHandlerV1 creates HandlerV1
func NewDocumentHandlerV1(service port.DocumentService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		documentService: service,
		logger:          logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/upload", h.UploadDocumentV1)
	router.Get("/{objectName}", h.DownloadDocumentV1)

	return router
}

// V1MessageResponse is the body of upload responses, errors included
type V1MessageResponse struct {
	Message  string              `json:"message"`
	Document *V1DocumentResponse `json:"document,omitempty"`
}

func (h *HandlerV1) writeMessage(w http.ResponseWriter, status int, resp V1MessageResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
