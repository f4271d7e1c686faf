package audit

import (
	"filepress/internal/core/port"
	"log/slog"
)

type auditService struct {
	logger *slog.Logger
}

// NewAuditService creates a handler that writes one audit line per file event
func NewAuditService(logger *slog.Logger) port.MessageService {
	return &auditService{
		logger: logger.With("component", "audit"),
	}
}
