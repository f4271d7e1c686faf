package port

import (
	"context"
	"filepress/internal/core/domain"
	"io"
	"time"

	"github.com/google/uuid"
)

// FileRecordRepository is an interface to define file record persistence
type FileRecordRepository interface {
	Create(ctx context.Context, record domain.FileRecord) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.FileRecord, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.FileRecord, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RecordStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindTrashedBefore(ctx context.Context, before time.Time) ([]domain.FileRecord, error)
}

// FileBlobStorage is an interface to define blob storage interactions.
// Blobs are keyed by sanitized filename.
type FileBlobStorage interface {
	Save(ctx context.Context, filename string, content io.Reader, size int64) (int64, error)
	Open(ctx context.Context, filename string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, filename string) error
	Exists(ctx context.Context, filename string) (bool, error)
}

// FileService is an interface to define file service
type FileService interface {
	Create(ctx context.Context, upload domain.Upload) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.DownloadGrant, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.FileRecord, int, error)
	Delete(ctx context.Context, id uuid.UUID, force bool) (*domain.DeleteResult, error)
	Deliver(ctx context.Context, filename string, salt string) (*domain.Delivery, error)
	AuthCheck(ctx context.Context) (*domain.AuthStatus, error)
}
