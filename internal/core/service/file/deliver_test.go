package file_test

import (
	"context"
	"errors"
	"filepress/internal/core/domain"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFileService_Deliver_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newService(false)

	m.tokens.On("Redeem", ctx, "report.pdf", "4242").Return(true, nil)
	m.storage.On("Open", ctx, "report.pdf").Return(io.NopCloser(strings.NewReader("content")), int64(7), nil)

	// Act
	delivery, err := service.Deliver(ctx, "report.pdf", "4242")

	// Assert
	require.NoError(t, err)
	defer delivery.Content.Close()
	assert.Equal(t, "report.pdf", delivery.Filename)
	assert.Equal(t, int64(7), delivery.Size)
	body, err := io.ReadAll(delivery.Content)
	require.NoError(t, err)
	assert.Equal(t, "content", string(body))
}

func TestFileService_Deliver_SanitizesInputs(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newService(false)

	m.tokens.On("Redeem", ctx, "report.pdf", "42").Return(true, nil)
	m.storage.On("Open", ctx, "report.pdf").Return(io.NopCloser(strings.NewReader("")), int64(0), nil)

	// Act
	_, err := service.Deliver(ctx, "../report.pdf", " 42 ")

	// Assert
	require.NoError(t, err)
	m.tokens.AssertExpectations(t)
	m.storage.AssertExpectations(t)
}

func TestFileService_Deliver_EmptyAfterSanitizing(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newService(false)

	// Act
	_, errFile := service.Deliver(ctx, "???", "1")
	_, errSalt := service.Deliver(ctx, "a.txt", "!!")

	// Assert
	assert.ErrorIs(t, errFile, domain.ErrValidation)
	assert.ErrorIs(t, errSalt, domain.ErrValidation)
	m.tokens.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything, mock.Anything)
}

func TestFileService_Deliver_RejectedToken(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newService(true)

	m.tokens.On("Redeem", ctx, "report.pdf", "1").Return(false, nil)

	// Act
	delivery, err := service.Deliver(ctx, "report.pdf", "1")

	// Assert
	assert.Nil(t, delivery)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	m.storage.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
}

func TestFileService_Deliver_RedeemError(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newService(false)
	cacheErr := errors.New("badger closed")

	m.tokens.On("Redeem", ctx, "report.pdf", "1").Return(false, cacheErr)

	// Act
	_, err := service.Deliver(ctx, "report.pdf", "1")

	// Assert
	assert.ErrorIs(t, err, cacheErr)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestFileService_Deliver_MissingBlob(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newService(false)

	m.tokens.On("Redeem", ctx, "report.pdf", "1").Return(true, nil)
	m.storage.On("Open", ctx, "report.pdf").Return(nil, int64(0), domain.ErrBlobNotFound)

	// Act
	_, err := service.Deliver(ctx, "report.pdf", "1")

	// Assert
	assert.ErrorIs(t, err, domain.ErrFile)
	assert.ErrorIs(t, err, domain.ErrBlobNotFound)
}
