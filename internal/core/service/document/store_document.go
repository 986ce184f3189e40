package document

import (
	"bytes"
	"context"
	"doc-intake/internal/core/domain"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// StoreDocument stores body under its base name, an existing document with the same name is replaced.
// size may be -1 when unknown.
func (d *documentService) StoreDocument(ctx context.Context, name string, size int64, body io.Reader) (*domain.Document, error) {
	name, err := documentName(name)
	if err != nil {
		return nil, err
	}
	if size > d.cfg.MaxUploadSize {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", domain.ErrDocumentTooLarge, size, d.cfg.MaxUploadSize)
	}

	// a failed metadata write only removes the object when it did not replace a stored document
	replacing := true
	if _, err := d.documents.FindByName(ctx, name); err != nil {
		if !errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, fmt.Errorf("failed to look up document %s: %w", name, err)
		}
		replacing = false
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	head = head[:n]
	contentType := contentTypeOf(name, head)

	// one extra byte tells an oversized unknown length body apart
	full := io.LimitReader(io.MultiReader(bytes.NewReader(head), body), d.cfg.MaxUploadSize+1)

	info, err := d.storage.PutObject(ctx, name, full, size, contentType)
	if err != nil {
		return nil, err
	}
	if info.Size > d.cfg.MaxUploadSize {
		if delErr := d.storage.DeleteObject(ctx, info.Key); delErr != nil {
			d.logger.Error("failed to delete oversized object", "key", info.Key, "error", delErr)
		}
		return nil, fmt.Errorf("%w: limit is %d", domain.ErrDocumentTooLarge, d.cfg.MaxUploadSize)
	}

	stored, err := d.documents.Upsert(ctx, domain.Document{
		ID:          uuid.New(),
		Name:        name,
		ContentType: contentType,
		SizeBytes:   info.Size,
		StorageKey:  info.Key,
	})
	if err != nil {
		if !replacing {
			if delErr := d.storage.DeleteObject(ctx, info.Key); delErr != nil {
				d.logger.Error("failed to delete orphan object", "key", info.Key, "error", delErr)
			}
		}
		return nil, err
	}

	d.logger.Info("document stored", "name", stored.Name, "size", stored.SizeBytes, "content_type", stored.ContentType)

	if d.publisher != nil {
		if err := d.publisher.Publish(ctx, domain.Event{Type: domain.EventTypeDocumentStored, Document: stored}); err != nil {
			d.logger.Warn("failed to publish document stored event", "name", stored.Name, "error", err)
		}
	}

	return stored, nil
}
