package file_test

import (
	"context"
	"filepress/internal/core/domain"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileService_AuthCheck(t *testing.T) {
	t.Run("logged in", func(t *testing.T) {
		// Arrange
		service, _ := newService(true)

		// Act
		status, err := service.AuthCheck(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, &domain.AuthStatus{Message: "You are logged in", Status: http.StatusOK}, status)
	})

	t.Run("not logged in", func(t *testing.T) {
		// Arrange
		service, _ := newService(false)

		// Act
		status, err := service.AuthCheck(context.Background())

		// Assert
		assert.Nil(t, status)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
