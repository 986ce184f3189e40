package document

import (
	"doc-intake/internal/core/domain"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// DownloadDocumentV1 streams a stored document as an attachment
func (h *HandlerV1) DownloadDocumentV1(w http.ResponseWriter, r *http.Request) {
	objectName := chi.URLParam(r, "objectName")
	if objectName == "" {
		http.Error(w, "object name is required", http.StatusBadRequest)
		return
	}

	document, body, err := h.documentService.GetDocument(r.Context(), objectName)
	switch {
	case errors.Is(err, domain.ErrInvalidDocumentName):
		http.Error(w, "invalid object name", http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrDocumentNotFound):
		http.Error(w, "document not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error getting document", "name", objectName, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", document.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": document.Name}))
	if document.SizeBytes > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(document.SizeBytes, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("error streaming document", "name", document.Name, "error", err)
	}
}
