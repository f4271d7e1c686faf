package file

import (
	"context"
	"filepress/internal/core/domain"
	"fmt"

	"github.com/google/uuid"
)

func (f *fileService) Get(ctx context.Context, id uuid.UUID) (_ *domain.DownloadGrant, err error) {
	defer func() { observe("get", err) }()

	if !f.auth.IsAuthenticated(ctx) {
		return nil, domain.ErrUnauthorized
	}

	record, err := f.uow.FileRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status == domain.RecordStatusTrash {
		return nil, domain.ErrRecordNotFound
	}

	token, err := f.tokens.Issue(ctx, record.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to issue download token: %w", err)
	}

	return &domain.DownloadGrant{Filename: record.Filename, Salt: token.Salt}, nil
}
