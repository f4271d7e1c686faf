package file

import (
	"context"
	"filepress/internal/core/domain"
	"fmt"
)

// List pages through records. Anonymous callers only ever see published ones.
func (f *fileService) List(ctx context.Context, filter domain.ListFilter) (_ []domain.FileRecord, _ int, err error) {
	defer func() { observe("list", err) }()

	for _, status := range filter.Statuses {
		if !status.Valid() {
			return nil, 0, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
		}
	}
	if filter.PerPage > maxPerPage {
		return nil, 0, fmt.Errorf("%w: per_page must be at most %d", domain.ErrValidation, maxPerPage)
	}
	if filter.Page > maxPage {
		return nil, 0, fmt.Errorf("%w: page must be at most %d", domain.ErrValidation, maxPage)
	}

	if !f.auth.IsAuthenticated(ctx) || len(filter.Statuses) == 0 {
		filter.Statuses = []domain.RecordStatus{domain.RecordStatusPublish}
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = defaultPerPage
	}

	records, total, err := f.uow.FileRepo().List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
