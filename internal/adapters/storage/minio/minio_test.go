package minio_test

import (
	"bytes"
	"context"
	"filepress/internal/adapters/storage/minio"
	"filepress/internal/config"
	"filepress/internal/core/domain"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// newAdapter starts a minio server for the test and returns an adapter on a fresh bucket
func newAdapter(t *testing.T) *minio.Adapter {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:latest",
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     "filepress",
				"MINIO_ROOT_PASSWORD": "filepress-secret",
			},
			Cmd:        []string{"server", "/data"},
			WaitingFor: wait.ForHTTP("/minio/health/ready").WithPort("9000/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	endpoint, err := container.PortEndpoint(ctx, "9000/tcp", "")
	require.NoError(t, err)

	adapter, err := minio.NewAdapter(ctx, config.MinioConfig{
		Endpoint:   endpoint,
		AccessKey:  "filepress",
		SecretKey:  "filepress-secret",
		BucketName: "filepress-test",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return adapter
}

func readAll(t *testing.T, adapter *minio.Adapter, filename string) (string, int64) {
	t.Helper()
	reader, size, err := adapter.Open(context.Background(), filename)
	require.NoError(t, err)
	defer reader.Close()
	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	return string(got), size
}

func TestAdapter(t *testing.T) {
	adapter := newAdapter(t)
	ctx := context.Background()

	t.Run("save and open", func(t *testing.T) {
		// Arrange
		content := bytes.Repeat([]byte{0x7f}, 2048)

		// Act
		written, err := adapter.Save(ctx, "report.pdf", bytes.NewReader(content), int64(len(content)))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(2048), written)
		got, size := readAll(t, adapter, "report.pdf")
		assert.Equal(t, int64(2048), size)
		assert.Equal(t, string(content), got)
	})

	t.Run("save replaces existing object", func(t *testing.T) {
		// Arrange
		_, err := adapter.Save(ctx, "notes.txt", strings.NewReader("first"), 5)
		require.NoError(t, err)

		// Act
		_, err = adapter.Save(ctx, "notes.txt", strings.NewReader("second version"), 14)

		// Assert
		require.NoError(t, err)
		got, size := readAll(t, adapter, "notes.txt")
		assert.Equal(t, int64(14), size)
		assert.Equal(t, "second version", got)
	})

	t.Run("open missing object", func(t *testing.T) {
		// Act
		reader, _, err := adapter.Open(ctx, "does-not-exist.txt")

		// Assert
		assert.ErrorIs(t, err, domain.ErrBlobNotFound)
		assert.Nil(t, reader)
	})

	t.Run("delete", func(t *testing.T) {
		// Arrange
		_, err := adapter.Save(ctx, "to-delete.txt", strings.NewReader("bye"), 3)
		require.NoError(t, err)

		// Act
		err = adapter.Delete(ctx, "to-delete.txt")

		// Assert
		require.NoError(t, err)
		exists, err := adapter.Exists(ctx, "to-delete.txt")
		require.NoError(t, err)
		assert.False(t, exists)
		assert.ErrorIs(t, adapter.Delete(ctx, "to-delete.txt"), domain.ErrBlobNotFound)
	})

	t.Run("exists", func(t *testing.T) {
		// Arrange
		_, err := adapter.Save(ctx, "present.txt", strings.NewReader("x"), 1)
		require.NoError(t, err)

		// Act
		present, err := adapter.Exists(ctx, "present.txt")
		require.NoError(t, err)
		absent, err := adapter.Exists(ctx, "absent.txt")
		require.NoError(t, err)

		// Assert
		assert.True(t, present)
		assert.False(t, absent)
	})
}
