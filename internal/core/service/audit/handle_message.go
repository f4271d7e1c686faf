package audit

import (
	"context"
	"encoding/json"
	"filepress/internal/core/domain"
	"fmt"

	"github.com/google/uuid"
)

func (a *auditService) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.FileEvent

	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("could not unmarshal file event: %w", err)
	}
	if !event.Type.Valid() {
		return fmt.Errorf("unknown file event type %q", event.Type)
	}
	if event.RecordID == uuid.Nil {
		return fmt.Errorf("file event %s has no record id", event.Type)
	}

	a.logger.InfoContext(ctx, "file event",
		"type", event.Type,
		"record_id", event.RecordID.String(),
		"filename", event.Filename,
		"occurred_at", event.OccurredAt)

	return nil
}
