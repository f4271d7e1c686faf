package eventbroker

import (
	"context"
	"filepress/internal/core/domain"
	"log/slog"
)

// NoopPublisher drops events, used when no broker is configured
type NoopPublisher struct {
	logger *slog.Logger
}

func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) Publish(_ context.Context, event domain.FileEvent) error {
	p.logger.Debug("event dropped, no broker configured", "type", event.Type, "record_id", event.RecordID)
	return nil
}
