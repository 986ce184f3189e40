package document

import (
	"doc-intake/internal/core/domain"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// fileField is the multipart field carrying the document
const fileField = "file"

// V1DocumentResponse describes a stored document
type V1DocumentResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UploadDocumentV1 streams the "file" part of a multipart request to the document service
func (h *HandlerV1) UploadDocumentV1(w http.ResponseWriter, r *http.Request) {
	reader, err := r.MultipartReader()
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, V1MessageResponse{Message: "multipart form data is required"})
		return
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			h.writeMessage(w, http.StatusBadRequest, V1MessageResponse{Message: "file is required"})
			return
		}
		if err != nil {
			h.writeReadError(w, err)
			return
		}
		if part.FormName() != fileField {
			_ = part.Close()
			continue
		}

		name := part.FileName()
		document, err := h.documentService.StoreDocument(r.Context(), name, -1, part)
		_ = part.Close()

		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.Is(err, domain.ErrInvalidDocumentName):
			h.writeMessage(w, http.StatusBadRequest, V1MessageResponse{Message: "a file name is required"})
		case errors.Is(err, domain.ErrDocumentTooLarge), errors.As(err, &maxBytesErr):
			h.writeMessage(w, http.StatusRequestEntityTooLarge, V1MessageResponse{Message: fmt.Sprintf("File '%s' is too large", name)})
		case err != nil:
			h.logger.Error("error storing document", "name", name, "error", err)
			h.writeMessage(w, http.StatusInternalServerError, V1MessageResponse{Message: fmt.Sprintf("An error occurred while storing '%s'", name)})
		default:
			h.writeMessage(w, http.StatusCreated, V1MessageResponse{
				Message: fmt.Sprintf("File '%s' uploaded successfully.", document.Name),
				Document: &V1DocumentResponse{
					ID:          document.ID,
					Name:        document.Name,
					ContentType: document.ContentType,
					SizeBytes:   document.SizeBytes,
					UpdatedAt:   document.UpdatedAt,
				},
			})
		}
		return
	}
}

func (h *HandlerV1) writeReadError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.writeMessage(w, http.StatusRequestEntityTooLarge, V1MessageResponse{Message: "request body too large"})
		return
	}
	h.writeMessage(w, http.StatusBadRequest, V1MessageResponse{Message: "malformed multipart form data"})
}
