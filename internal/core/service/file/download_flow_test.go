package file_test

import (
	"bytes"
	"context"
	"filepress/internal/adapters/auth"
	"filepress/internal/adapters/cache/badger"
	"filepress/internal/adapters/eventbroker"
	"filepress/internal/adapters/repository"
	"filepress/internal/adapters/storage/filesystem"
	"filepress/internal/config"
	"filepress/internal/core/domain"
	"filepress/internal/core/port"
	"filepress/internal/core/service/file"
	"filepress/internal/core/service/token"
	"io"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type downloadFlow struct {
	service port.FileService
	repo    *repository.MockFileRecordRepository
	clock   *fakeClock
}

// newDownloadFlow wires the file service on a real filesystem store and a real
// token broker. Records are captured by the repository mock.
func newDownloadFlow(t *testing.T) *downloadFlow {
	t.Helper()

	store, err := filesystem.NewStore(config.StorageConfig{Backend: config.StorageBackendFilesystem, Dir: t.TempDir()}, discardLogger)
	require.NoError(t, err)

	tokenCfg := config.TokenConfig{TTL: 10 * time.Second, SaltMax: 100000}
	c, err := badger.NewCache(tokenCfg, discardLogger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	broker := token.NewTokenBroker(c, tokenCfg, discardLogger, token.WithClock(clock.Now))

	uow := repository.NewMockUnitOfWork()
	authChecker := auth.NewMockAuthChecker()
	authChecker.On("IsAuthenticated", mock.Anything).Return(true)

	service := file.NewFileService(uow, store, broker, authChecker, eventbroker.NewNoopPublisher(discardLogger), discardLogger)
	return &downloadFlow{service: service, repo: uow.GetFileRepoMock(), clock: clock}
}

// create uploads content and makes the stored record readable by id
func (f *downloadFlow) create(t *testing.T, filename string, content []byte) (uuid.UUID, domain.FileRecord) {
	t.Helper()
	ctx := context.Background()
	id := uuid.New()

	var stored domain.FileRecord
	f.repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(domain.FileRecord)
		stored.ID = id
	}).Return(id, nil).Once()

	got, err := f.service.Create(ctx, domain.Upload{Filename: filename, Size: int64(len(content)), Content: bytes.NewReader(content)})
	require.NoError(t, err)
	require.Equal(t, id, got)

	f.repo.On("FindByID", mock.Anything, id).Return(&stored, nil)
	return id, stored
}

func TestDownloadFlow_CreateGetDeliver(t *testing.T) {
	// Arrange
	ctx := context.Background()
	flow := newDownloadFlow(t)
	content := pdfContent(2048)
	id, record := flow.create(t, "report.pdf", content)

	// Act
	grant, err := flow.service.Get(ctx, id)
	require.NoError(t, err)
	flow.clock.Advance(5 * time.Second)
	delivery, err := flow.service.Deliver(ctx, grant.Filename, strconv.FormatInt(grant.Salt, 10))
	require.NoError(t, err)
	defer delivery.Content.Close()
	body, err := io.ReadAll(delivery.Content)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2 KB", record.SizeLabel)
	assert.Equal(t, int64(2048), record.SizeBytes)
	assert.Equal(t, "application/pdf", record.MimeType)
	assert.Equal(t, "report.pdf", grant.Filename)
	assert.Equal(t, int64(2048), delivery.Size)
	assert.Equal(t, content, body)
}

func TestDownloadFlow_TokenExpires(t *testing.T) {
	// Arrange
	ctx := context.Background()
	flow := newDownloadFlow(t)
	id, _ := flow.create(t, "report.pdf", pdfContent(2048))
	grant, err := flow.service.Get(ctx, id)
	require.NoError(t, err)

	// Act
	flow.clock.Advance(11 * time.Second)
	delivery, err := flow.service.Deliver(ctx, grant.Filename, strconv.FormatInt(grant.Salt, 10))

	// Assert
	assert.Nil(t, delivery)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDownloadFlow_WrongSalt(t *testing.T) {
	// Arrange
	ctx := context.Background()
	flow := newDownloadFlow(t)
	id, _ := flow.create(t, "report.pdf", pdfContent(2048))
	grant, err := flow.service.Get(ctx, id)
	require.NoError(t, err)

	// Act
	_, err = flow.service.Deliver(ctx, grant.Filename, strconv.FormatInt(grant.Salt+100001, 10))

	// Assert
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDownloadFlow_TokenBoundToFilename(t *testing.T) {
	// Arrange
	ctx := context.Background()
	flow := newDownloadFlow(t)
	id, _ := flow.create(t, "report.pdf", pdfContent(2048))
	flow.create(t, "secret.pdf", pdfContent(1024))
	grant, err := flow.service.Get(ctx, id)
	require.NoError(t, err)

	// Act
	_, err = flow.service.Deliver(ctx, "secret.pdf", strconv.FormatInt(grant.Salt, 10))

	// Assert
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDownloadFlow_TrashRemovesBlob(t *testing.T) {
	// Arrange
	ctx := context.Background()
	flow := newDownloadFlow(t)
	id, _ := flow.create(t, "report.pdf", pdfContent(2048))
	grant, err := flow.service.Get(ctx, id)
	require.NoError(t, err)
	flow.repo.On("UpdateStatus", mock.Anything, id, domain.RecordStatusTrash).Return(nil)

	// Act
	result, err := flow.service.Delete(ctx, id, false)
	require.NoError(t, err)
	_, deliverErr := flow.service.Deliver(ctx, grant.Filename, strconv.FormatInt(grant.Salt, 10))

	// Assert
	assert.False(t, result.Deleted)
	assert.ErrorIs(t, deliverErr, domain.ErrFile)
	assert.ErrorIs(t, deliverErr, domain.ErrBlobNotFound)
}
