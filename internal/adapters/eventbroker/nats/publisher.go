package nats

import (
	"context"
	"doc-intake/internal/config"
	"doc-intake/internal/core/domain"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher publishes domain events on JetStream, one subject per event type
type Publisher struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
}

// NewNATSPublisher creates a new publisher and makes sure the stream exists
func NewNATSPublisher(ctx context.Context, cfg config.NATSConfig, name string, logger *slog.Logger) (*Publisher, error) {
	conn, js, err := connect(cfg, name, logger)
	if err != nil {
		return nil, err
	}
	if err := ensureStream(ctx, js, cfg); err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{
		conn:   conn,
		js:     js,
		config: cfg,
		logger: logger,
	}, nil
}

// Publish sends the event and waits for the stream acknowledgement
func (p *Publisher) Publish(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := p.config.Subject + "." + string(event.Type)
	opts := []jetstream.PublishOpt{}
	if id := messageID(event); id != "" {
		opts = append(opts, jetstream.WithMsgID(id))
	}

	ack, err := p.js.Publish(ctx, subject, data, opts...)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	p.logger.Debug("event published", "subject", subject, "sequence", ack.Sequence, "duplicate", ack.Duplicate)
	return nil
}

// Notify publishes a completion event, Publisher is a port.CompletionSink
func (p *Publisher) Notify(ctx context.Context, event domain.CompletionEvent) error {
	return p.Publish(ctx, domain.Event{Type: domain.EventTypeUploadCompleted, Completion: &event})
}

// Close drains pending publishes and closes the connection
func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	return nil
}

// messageID lets JetStream drop a republished event within its duplicate window
func messageID(event domain.Event) string {
	switch {
	case event.Completion != nil:
		return string(event.Type) + ":" + event.Completion.ID.String()
	case event.Document != nil:
		return fmt.Sprintf("%s:%s:%d", event.Type, event.Document.ID, event.Document.UpdatedAt.UnixNano())
	default:
		return ""
	}
}
