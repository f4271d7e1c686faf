package cleanup

import (
	"filepress/internal/core/port"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const orphanScanPageSize = 100

var (
	orphanedRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "filepress_orphaned_records",
		Help: "Published records whose blob is missing, as of the last scan",
	})

	purgedRecordsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "filepress_purged_records_total",
		Help: "Trashed records removed by the purge task",
	})
)

type cleanupService struct {
	uow    port.UnitOfWork
	blobs  port.FileBlobStorage
	logger *slog.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(uow port.UnitOfWork, blobs port.FileBlobStorage, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		uow:    uow,
		blobs:  blobs,
		logger: logger,
	}
}
