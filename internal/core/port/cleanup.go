package port

import (
	"context"
	"filepress/internal/core/domain"
	"time"
)

// CleanupService is service that handles periodic maintenance
type CleanupService interface {
	PurgeTrashed(ctx context.Context, before time.Time) (int, error)
	ReportOrphans(ctx context.Context) ([]domain.FileRecord, error)
}
