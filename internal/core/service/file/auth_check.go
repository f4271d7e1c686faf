package file

import (
	"context"
	"filepress/internal/core/domain"
	"net/http"
)

func (f *fileService) AuthCheck(ctx context.Context) (*domain.AuthStatus, error) {
	if !f.auth.IsAuthenticated(ctx) {
		return nil, domain.ErrUnauthorized
	}
	return &domain.AuthStatus{Message: "You are logged in", Status: http.StatusOK}, nil
}
