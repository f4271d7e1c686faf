package file

import (
	"context"
	"filepress/internal/core/domain"
	"filepress/internal/core/port"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
	maxPage        = 100000
)

var operationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "filepress_file_operations_total",
		Help: "File service operations by outcome",
	},
	[]string{"operation", "result"},
)

type fileService struct {
	uow     port.UnitOfWork
	blobs   port.FileBlobStorage
	tokens  port.DownloadTokenBroker
	auth    port.AuthChecker
	events  port.EventPublisher
	logger  *slog.Logger
	timeNow func() time.Time
}

// NewFileService creates a new file service
func NewFileService(uow port.UnitOfWork, blobs port.FileBlobStorage, tokens port.DownloadTokenBroker, auth port.AuthChecker, events port.EventPublisher, logger *slog.Logger) port.FileService {
	return &fileService{
		uow:     uow,
		blobs:   blobs,
		tokens:  tokens,
		auth:    auth,
		events:  events,
		logger:  logger,
		timeNow: time.Now,
	}
}

// publish sends a lifecycle event. Failures are logged, the operation already happened.
func (f *fileService) publish(ctx context.Context, eventType domain.EventType, record domain.FileRecord) {
	event := domain.FileEvent{
		Type:       eventType,
		RecordID:   record.ID,
		Filename:   record.Filename,
		OccurredAt: f.timeNow().UTC(),
	}
	if err := f.events.Publish(ctx, event); err != nil {
		f.logger.Warn("failed to publish file event", "type", eventType, "record_id", record.ID, "error", err)
	}
}

func observe(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	operationsTotal.WithLabelValues(operation, result).Inc()
}
