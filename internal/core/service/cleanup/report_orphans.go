package cleanup

import (
	"context"
	"filepress/internal/core/domain"
)

// ReportOrphans lists published records whose blob is gone. It only reads.
func (c *cleanupService) ReportOrphans(ctx context.Context) ([]domain.FileRecord, error) {
	var orphans []domain.FileRecord

	filter := domain.ListFilter{
		Statuses: []domain.RecordStatus{domain.RecordStatusPublish},
		Page:     1,
		PerPage:  orphanScanPageSize,
	}

	for {
		records, total, err := c.uow.FileRepo().List(ctx, filter)
		if err != nil {
			return nil, err
		}

		for _, record := range records {
			exists, err := c.blobs.Exists(ctx, record.Filename)
			if err != nil {
				return nil, err
			}
			if !exists {
				c.logger.Warn("published record has no blob", "id", record.ID, "filename", record.Filename)
				orphans = append(orphans, record)
			}
		}

		if len(records) == 0 || filter.Page*filter.PerPage >= total {
			break
		}
		filter.Page++
	}

	orphanedRecords.Set(float64(len(orphans)))
	c.logger.Info("orphan scan completed", "orphans", len(orphans))
	return orphans, nil
}
