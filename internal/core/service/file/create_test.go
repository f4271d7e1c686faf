package file_test

import (
	"bytes"
	"context"
	"errors"
	"filepress/internal/core/domain"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pdfContent(size int) []byte {
	content := bytes.Repeat([]byte{'x'}, size)
	copy(content, "%PDF-1.4\n")
	return content
}

func TestFileService_Create_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newService(true)
	id := uuid.New()

	m.storage.On("Save", ctx, "my-report.pdf", mock.Anything, int64(2048)).Return(int64(2048), nil)
	m.repo.On("Create", ctx, domain.FileRecord{
		Filename:  "my-report.pdf",
		SizeLabel: "2 KB",
		SizeBytes: 2048,
		MimeType:  "application/pdf",
		Status:    domain.RecordStatusPublish,
	}).Return(id, nil)
	m.events.On("Publish", ctx, mock.MatchedBy(func(e domain.FileEvent) bool {
		return e.Type == domain.EventTypeFileCreated && e.RecordID == id && e.Filename == "my-report.pdf"
	})).Return(nil)

	// Act
	got, err := service.Create(ctx, domain.Upload{
		Filename: "my report.pdf",
		Size:     2048,
		Content:  bytes.NewReader(pdfContent(2048)),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, id, got)
	m.storage.AssertExpectations(t)
	m.repo.AssertExpectations(t)
	m.events.AssertExpectations(t)
}

func TestFileService_Create_Unauthorized(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newService(false)

	// Act
	_, err := service.Create(ctx, domain.Upload{Filename: "a.txt", Size: 1, Content: bytes.NewReader([]byte("a"))})

	// Assert
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	m.storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFileService_Create_EmptyNameAfterSanitizing(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newService(true)

	// Act
	_, err := service.Create(ctx, domain.Upload{Filename: "?*/", Size: 1, Content: bytes.NewReader([]byte("a"))})

	// Assert
	assert.ErrorIs(t, err, domain.ErrValidation)
	m.storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFileService_Create_StorageError(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newService(true)
	diskErr := errors.New("no space left on device")

	m.storage.On("Save", ctx, "a.txt", mock.Anything, int64(1)).Return(int64(0), diskErr)

	// Act
	_, err := service.Create(ctx, domain.Upload{Filename: "a.txt", Size: 1, Content: bytes.NewReader([]byte("a"))})

	// Assert
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, diskErr)
	m.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestFileService_Create_RecordErrorLeavesBlob(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newService(true)
	dbErr := errors.New("connection refused")

	m.storage.On("Save", ctx, "a.txt", mock.Anything, int64(1)).Return(int64(1), nil)
	m.repo.On("Create", ctx, mock.Anything).Return(uuid.Nil, dbErr)

	// Act
	_, err := service.Create(ctx, domain.Upload{Filename: "a.txt", Size: 1, Content: bytes.NewReader([]byte("a"))})

	// Assert
	assert.ErrorIs(t, err, dbErr)
	m.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	m.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestFileService_Create_PublishErrorIgnored(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newService(true)
	id := uuid.New()

	m.storage.On("Save", ctx, "notes.txt", mock.Anything, int64(5)).Return(int64(5), nil)
	m.repo.On("Create", ctx, mock.MatchedBy(func(r domain.FileRecord) bool {
		return r.MimeType == "text/plain; charset=utf-8" && r.SizeLabel == "0 KB"
	})).Return(id, nil)
	m.events.On("Publish", ctx, mock.Anything).Return(errors.New("nats: no responders"))

	// Act
	got, err := service.Create(ctx, domain.Upload{Filename: "notes.txt", Size: 5, Content: bytes.NewReader([]byte("hello"))})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, id, got)
	m.repo.AssertExpectations(t)
}
