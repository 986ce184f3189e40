package nats_test

import (
	"context"
	natsbroker "doc-intake/internal/adapters/eventbroker/nats"
	"doc-intake/internal/config"
	"doc-intake/internal/core/domain"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type recordingHandler struct {
	messages [][]byte
	received chan struct{}
	err      error
	mu       sync.Mutex
}

func (m *recordingHandler) HandleMessage(ctx context.Context, data []byte) error {
	m.mu.Lock()
	m.messages = append(m.messages, data)
	m.mu.Unlock()

	if m.received != nil {
		m.received <- struct{}{}
	}
	return m.err
}

func (m *recordingHandler) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

func setupNATSContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "nats:2.10-alpine",
		ExposedPorts: []string{"4222/tcp"},
		Cmd:          []string{"-js"},
		WaitingFor:   wait.ForLog("Server is ready"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "4222")
	require.NoError(t, err)

	cleanup := func() {
		_ = container.Terminate(ctx)
	}

	return "nats://" + host + ":" + port.Port(), cleanup
}

func newConfig(natsURL, name string) config.NATSConfig {
	return config.NATSConfig{
		URL:          natsURL,
		StreamName:   name + "-stream",
		Subject:      name + ".events",
		ConsumerName: name + "-consumer",
	}
}

func waitFor(t *testing.T, received chan struct{}, n int, timeout time.Duration) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-received:
		case <-time.After(timeout):
			t.Fatalf("message %d not received", i)
		}
	}
}

func TestPublisherToConsumer(t *testing.T) {
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()

	t.Run("completion event round trip", func(t *testing.T) {
		// Arrange
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		cfg := newConfig(natsURL, "roundtrip")

		publisher, err := natsbroker.NewNATSPublisher(ctx, cfg, "intake", discardLogger)
		require.NoError(t, err)
		defer publisher.Close()

		consumer, err := natsbroker.NewNATSConsumer(cfg, discardLogger)
		require.NoError(t, err)
		defer consumer.Close()

		handler := &recordingHandler{received: make(chan struct{}, 1)}
		require.NoError(t, consumer.Subscribe(ctx, handler))

		completion := domain.CompletionEvent{
			ID:          uuid.New(),
			FileName:    "report.pdf",
			SizeBytes:   42,
			Success:     true,
			CompletedAt: time.Now().UTC(),
		}

		// Act
		err = publisher.Notify(ctx, completion)

		// Assert
		require.NoError(t, err)
		waitFor(t, handler.received, 1, 3*time.Second)

		var event domain.Event
		require.NoError(t, json.Unmarshal(handler.messages[0], &event))
		assert.Equal(t, domain.EventTypeUploadCompleted, event.Type)
		require.NotNil(t, event.Completion)
		assert.Equal(t, completion.ID, event.Completion.ID)
		assert.Equal(t, "report.pdf", event.Completion.FileName)
	})

	t.Run("republished event is deduplicated", func(t *testing.T) {
		// Arrange
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		cfg := newConfig(natsURL, "dedup")

		publisher, err := natsbroker.NewNATSPublisher(ctx, cfg, "api", discardLogger)
		require.NoError(t, err)
		defer publisher.Close()

		consumer, err := natsbroker.NewNATSConsumer(cfg, discardLogger)
		require.NoError(t, err)
		defer consumer.Close()

		handler := &recordingHandler{received: make(chan struct{}, 2)}
		require.NoError(t, consumer.Subscribe(ctx, handler))

		event := domain.Event{
			Type:     domain.EventTypeDocumentStored,
			Document: &domain.Document{ID: uuid.New(), Name: "a.pdf", UpdatedAt: time.Now()},
		}

		// Act
		require.NoError(t, publisher.Publish(ctx, event))
		require.NoError(t, publisher.Publish(ctx, event))

		// Assert
		waitFor(t, handler.received, 1, 3*time.Second)
		select {
		case <-handler.received:
			t.Fatal("duplicate event delivered")
		case <-time.After(500 * time.Millisecond):
		}
		assert.Equal(t, 1, handler.count())
	})
}

func TestConsumer_Subscribe_HandlerError(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	cfg := newConfig(natsURL, "retry")

	nc, err := nats.Connect(natsURL)
	require.NoError(t, err)
	defer nc.Close()

	handler := &recordingHandler{
		received: make(chan struct{}, 3),
		err:      fmt.Errorf("temporary failure"),
	}
	consumer, err := natsbroker.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)
	defer consumer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Act
	require.NoError(t, consumer.Subscribe(ctx, handler))
	require.NoError(t, nc.Publish(cfg.Subject+".intake.upload.completed", []byte("retry-data")))

	// Assert
	waitFor(t, handler.received, 3, 3*time.Second)
	assert.GreaterOrEqual(t, handler.count(), 3)
}

func TestConsumer_UnknownEventIsNotRedelivered(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	cfg := newConfig(natsURL, "unknown")

	nc, err := nats.Connect(natsURL)
	require.NoError(t, err)
	defer nc.Close()

	handler := &recordingHandler{
		received: make(chan struct{}, 2),
		err:      fmt.Errorf("type %q: %w", "other", domain.ErrUnknownEvent),
	}
	consumer, err := natsbroker.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)
	defer consumer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Act
	require.NoError(t, consumer.Subscribe(ctx, handler))
	require.NoError(t, nc.Publish(cfg.Subject+".other", []byte(`{"type":"other"}`)))

	// Assert
	waitFor(t, handler.received, 1, 3*time.Second)
	select {
	case <-handler.received:
		t.Fatal("terminated message was redelivered")
	case <-time.After(time.Second):
	}
}

func TestConsumer_GracefulShutdown(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	cfg := newConfig(natsURL, "shutdown")

	nc, err := nats.Connect(natsURL)
	require.NoError(t, err)
	defer nc.Close()

	handler := &recordingHandler{received: make(chan struct{}, 1)}
	consumer, err := natsbroker.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)

	// Act
	require.NoError(t, consumer.Subscribe(context.Background(), handler))
	require.NoError(t, consumer.Close())
	_ = nc.Publish(cfg.Subject+".late", []byte("late-data"))

	// Assert
	select {
	case <-handler.received:
		t.Fatal("message should not have been processed after Close")
	case <-time.After(500 * time.Millisecond):
	}
}
