package domain

import (
	"io"
	"math"
	"time"

	"github.com/google/uuid"
)

// RecordStatus represents the publication status of a file record
type RecordStatus string

const (
	RecordStatusDraft   RecordStatus = "draft"
	RecordStatusPublish RecordStatus = "publish"
	RecordStatusTrash   RecordStatus = "trash"
)

// Valid reports whether s is a known status
func (s RecordStatus) Valid() bool {
	switch s {
	case RecordStatusDraft, RecordStatusPublish, RecordStatusTrash:
		return true
	default:
		return false
	}
}

// FileRecord represents the metadata of an uploaded file.
// Filename is both the title and the blob key.
type FileRecord struct {
	ID        uuid.UUID
	Filename  string
	SizeLabel string
	SizeBytes int64
	MimeType  string
	Status    RecordStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Upload is an inbound file as parsed from a multipart payload
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// ListFilter narrows and paginates a record listing
type ListFilter struct {
	Statuses []RecordStatus
	Search   string
	Page     int
	PerPage  int
}

// Offset returns the row offset for the filter page, saturating at math.MaxInt
func (f ListFilter) Offset() int {
	if f.Page <= 1 || f.PerPage <= 0 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.PerPage {
		return math.MaxInt
	}
	return (f.Page - 1) * f.PerPage
}

// DeleteResult is the outcome of a record deletion
type DeleteResult struct {
	Deleted  bool
	Previous FileRecord
}
