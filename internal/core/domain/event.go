package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType is a type that represents the type of a file lifecycle event
type EventType string

const (
	EventTypeFileCreated EventType = "file.created"
	EventTypeFileTrashed EventType = "file.trashed"
	EventTypeFileDeleted EventType = "file.deleted"
)

// FileEvent is published whenever a record and its blob change together
type FileEvent struct {
	Type       EventType `json:"type"`
	RecordID   uuid.UUID `json:"record_id"`
	Filename   string    `json:"filename"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Valid reports whether t is a known event type
func (t EventType) Valid() bool {
	switch t {
	case EventTypeFileCreated, EventTypeFileTrashed, EventTypeFileDeleted:
		return true
	default:
		return false
	}
}
