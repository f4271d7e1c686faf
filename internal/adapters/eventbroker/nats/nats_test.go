package nats_test

import (
	"context"
	"encoding/json"
	"errors"
	"filepress/internal/config"
	"filepress/internal/core/domain"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	nats2 "filepress/internal/adapters/eventbroker/nats"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// recorder forwards every delivery and fails the first failures of them
type recorder struct {
	deliveries chan []byte
	failures   int32
	calls      atomic.Int32
}

func newRecorder(failures int32) *recorder {
	return &recorder{deliveries: make(chan []byte, 16), failures: failures}
}

func (r *recorder) HandleMessage(_ context.Context, data []byte) error {
	n := r.calls.Add(1)
	r.deliveries <- data
	if n <= r.failures {
		return errors.New("audit sink unavailable")
	}
	return nil
}

func (r *recorder) next(t *testing.T) []byte {
	t.Helper()
	select {
	case data := <-r.deliveries:
		return data
	case <-time.After(5 * time.Second):
		t.Fatal("no delivery")
		return nil
	}
}

// startNATS runs a JetStream enabled server for the test and returns a config pointing at it
func startNATS(t *testing.T, name string) config.NATSConfig {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "nats:2.10-alpine",
			ExposedPorts: []string{"4222/tcp"},
			Cmd:          []string{"-js"},
			WaitingFor:   wait.ForLog("Server is ready"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.PortEndpoint(ctx, "4222/tcp", "nats")
	require.NoError(t, err)

	return config.NATSConfig{
		URL:          endpoint,
		StreamName:   name + "-events",
		Subject:      name + ".files",
		ConsumerName: name + "-audit",
	}
}

func TestPublisher_PublishAndConsume(t *testing.T) {
	// Arrange
	cfg := startNATS(t, "roundtrip")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	publisher, err := nats2.NewNATSPublisher(ctx, cfg, discardLogger)
	require.NoError(t, err)
	defer publisher.Close()

	consumer, err := nats2.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)
	defer consumer.Close()

	handler := newRecorder(0)
	event := domain.FileEvent{
		Type:       domain.EventTypeFileCreated,
		RecordID:   uuid.New(),
		Filename:   "report.pdf",
		OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	// Act
	require.NoError(t, consumer.Subscribe(ctx, handler))
	require.NoError(t, publisher.Publish(ctx, event))
	data := handler.next(t)

	// Assert
	var got domain.FileEvent
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, event, got)
	assert.Equal(t, "roundtrip.files.file.created", publisher.Subject(event.Type))
	assert.Equal(t, int32(1), handler.calls.Load())
}

func TestConsumer_RedeliversOnHandlerError(t *testing.T) {
	// Arrange
	cfg := startNATS(t, "redeliver")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	publisher, err := nats2.NewNATSPublisher(ctx, cfg, discardLogger)
	require.NoError(t, err)
	defer publisher.Close()

	consumer, err := nats2.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)
	defer consumer.Close()

	handler := newRecorder(2)
	event := domain.FileEvent{Type: domain.EventTypeFileDeleted, RecordID: uuid.New(), Filename: "a.txt"}

	// Act
	require.NoError(t, consumer.Subscribe(ctx, handler))
	require.NoError(t, publisher.Publish(ctx, event))
	first := handler.next(t)
	second := handler.next(t)
	third := handler.next(t)

	// Assert
	assert.Equal(t, first, second)
	assert.Equal(t, second, third)
	select {
	case <-handler.deliveries:
		t.Fatal("acked message was delivered again")
	case <-time.After(500 * time.Millisecond):
	}
	assert.Equal(t, int32(3), handler.calls.Load())
}

func TestConsumer_IgnoresOtherSubjects(t *testing.T) {
	// Arrange
	cfg := startNATS(t, "filter")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	consumer, err := nats2.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)
	defer consumer.Close()
	handler := newRecorder(0)
	require.NoError(t, consumer.Subscribe(ctx, handler))

	nc, err := nats.Connect(cfg.URL)
	require.NoError(t, err)
	defer nc.Close()

	// Act
	require.NoError(t, nc.Publish("filter.other", []byte("ignored")))
	require.NoError(t, nc.Flush())

	// Assert
	select {
	case <-handler.deliveries:
		t.Fatal("message outside the stream subjects was delivered")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestConsumer_GracefulShutdown(t *testing.T) {
	// Arrange
	cfg := startNATS(t, "shutdown")
	handler := newRecorder(0)
	consumer, err := nats2.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)

	nc, err := nats.Connect(cfg.URL)
	require.NoError(t, err)
	defer nc.Close()

	// Act
	require.NoError(t, consumer.Subscribe(context.Background(), handler))
	require.NoError(t, consumer.Close())
	require.NoError(t, consumer.Close())
	_ = nc.Publish(cfg.Subject+".file.trashed", []byte("late-data"))

	// Assert
	select {
	case <-handler.deliveries:
		t.Fatal("message processed after Close")
	case <-time.After(500 * time.Millisecond):
	}
}
