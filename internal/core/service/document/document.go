package document

import (
	"doc-intake/internal/config"
	"doc-intake/internal/core/domain"
	"doc-intake/internal/core/port"
	"log/slog"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen is how many leading bytes are read to detect the content type
const sniffLen = 3072

type documentService struct {
	storage   port.ObjectStorage
	documents port.DocumentRepository
	publisher port.EventPublisher
	cfg       config.DocumentConfig
	logger    *slog.Logger
}

// NewDocumentService creates a new document service, publisher may be nil
func NewDocumentService(storage port.ObjectStorage, documents port.DocumentRepository, publisher port.EventPublisher, cfg config.DocumentConfig, logger *slog.Logger) port.DocumentService {
	return &documentService{
		storage:   storage,
		documents: documents,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

// documentName keeps the base name of an uploaded file name, it is also the object key
func documentName(name string) (string, error) {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	switch name {
	case "", ".", "..", "/":
		return "", domain.ErrInvalidDocumentName
	}
	return name, nil
}

// contentTypeOf trusts the sniffed type unless it is generic and the extension knows better
func contentTypeOf(name string, head []byte) string {
	detected := mimetype.Detect(head)
	if detected.Is("application/octet-stream") || detected.Is("text/plain") {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
			return byExt
		}
	}
	return detected.String()
}
