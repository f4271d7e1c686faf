package cleanup

import (
	"context"
	"errors"
	"filepress/internal/core/domain"
	"filepress/internal/core/port"
	"time"
)

// PurgeTrashed hard deletes records trashed before the given time.
// Blobs are left alone: trashing already removed them and the name may
// have been reused by a newer upload since.
func (c *cleanupService) PurgeTrashed(ctx context.Context, before time.Time) (int, error) {

	records, err := c.uow.FileRepo().FindTrashedBefore(ctx, before)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	purged := 0
	txErr := c.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		for _, record := range records {
			if err := uow.FileRepo().Delete(ctx, record.ID); err != nil {
				if errors.Is(err, domain.ErrRecordNotFound) {
					continue
				}
				return err
			}
			purged++
		}
		return nil
	})
	if txErr != nil {
		c.logger.Error("failed to purge trashed records", "error", txErr)
		return 0, txErr
	}

	purgedRecordsTotal.Add(float64(purged))
	c.logger.Info("trash purge completed", "purged", purged, "before", before)
	return purged, nil
}
