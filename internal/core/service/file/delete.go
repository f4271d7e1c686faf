package file

import (
	"context"
	"filepress/internal/core/domain"
	"fmt"

	"github.com/google/uuid"
)

// Delete removes the blob first and only then the record, trashing it unless force is set.
// If the record update fails after the blob is gone the record is left orphaned.
func (f *fileService) Delete(ctx context.Context, id uuid.UUID, force bool) (_ *domain.DeleteResult, err error) {
	defer func() { observe("delete", err) }()

	if !f.auth.IsAuthenticated(ctx) {
		return nil, domain.ErrUnauthorized
	}

	repo := f.uow.FileRepo()
	record, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// trashing already removed the blob
	if record.Status == domain.RecordStatusTrash {
		if !force {
			return nil, domain.ErrAlreadyTrashed
		}
		return f.hardDelete(ctx, *record)
	}

	if err := f.blobs.Delete(ctx, record.Filename); err != nil {
		f.logger.Error("failed to delete blob, record kept", "id", id, "filename", record.Filename, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	if force {
		return f.hardDelete(ctx, *record)
	}

	if err := repo.UpdateStatus(ctx, id, domain.RecordStatusTrash); err != nil {
		f.logger.Error("blob deleted but record could not be trashed", "id", id, "filename", record.Filename, "error", err)
		return nil, err
	}

	trashed := *record
	trashed.Status = domain.RecordStatusTrash
	f.logger.Info("file trashed", "id", id, "filename", record.Filename)
	f.publish(ctx, domain.EventTypeFileTrashed, trashed)

	return &domain.DeleteResult{Deleted: false, Previous: trashed}, nil
}

func (f *fileService) hardDelete(ctx context.Context, record domain.FileRecord) (*domain.DeleteResult, error) {
	if err := f.uow.FileRepo().Delete(ctx, record.ID); err != nil {
		f.logger.Error("failed to delete file record", "id", record.ID, "filename", record.Filename, "error", err)
		return nil, err
	}

	f.logger.Info("file deleted", "id", record.ID, "filename", record.Filename)
	f.publish(ctx, domain.EventTypeFileDeleted, record)

	return &domain.DeleteResult{Deleted: true, Previous: record}, nil
}
