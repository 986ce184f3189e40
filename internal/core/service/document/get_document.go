package document

import (
	"context"
	"doc-intake/internal/core/domain"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"
)

// GetDocument returns the document metadata and its content, the caller closes the content.
// Objects present in storage without metadata are still served.
func (d *documentService) GetDocument(ctx context.Context, name string) (*domain.Document, io.ReadCloser, error) {
	name, err := documentName(name)
	if err != nil {
		return nil, nil, err
	}

	document, err := d.documents.FindByName(ctx, name)
	if err != nil && !errors.Is(err, domain.ErrDocumentNotFound) {
		return nil, nil, err
	}

	key := name
	if document != nil {
		key = document.StorageKey
	}

	body, info, err := d.storage.GetObject(ctx, key)
	if err != nil {
		return nil, nil, err
	}

	if document == nil {
		document = &domain.Document{
			Name:        name,
			ContentType: info.ContentType,
			SizeBytes:   info.Size,
			StorageKey:  info.Key,
			CreatedAt:   info.LastModified,
			UpdatedAt:   info.LastModified,
		}
	}
	if document.ContentType == "" || document.ContentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
			document.ContentType = byExt
		} else {
			document.ContentType = "application/octet-stream"
		}
	}

	return document, body, nil
}
