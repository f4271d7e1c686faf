package file

import (
	"bufio"
	"context"
	"filepress/internal/core/domain"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const sniffLen = 3072

func (f *fileService) Create(ctx context.Context, upload domain.Upload) (_ uuid.UUID, err error) {
	defer func() { observe("create", err) }()

	if !f.auth.IsAuthenticated(ctx) {
		return uuid.Nil, domain.ErrUnauthorized
	}

	filename := sanitizeFileName(upload.Filename)
	if filename == "" {
		return uuid.Nil, fmt.Errorf("%w: file name is empty", domain.ErrValidation)
	}

	content := bufio.NewReaderSize(upload.Content, sniffLen)
	// Peek returns what is available when the upload is shorter than sniffLen
	head, _ := content.Peek(sniffLen)
	mimeType := mimetype.Detect(head).String()

	written, err := f.blobs.Save(ctx, filename, content, upload.Size)
	if err != nil {
		f.logger.Error("failed to save blob", "filename", filename, "error", err)
		return uuid.Nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	record := domain.FileRecord{
		Filename:  filename,
		SizeLabel: sizeLabel(written),
		SizeBytes: written,
		MimeType:  mimeType,
		Status:    domain.RecordStatusPublish,
	}

	id, err := f.uow.FileRepo().Create(ctx, record)
	if err != nil {
		// the blob stays, another record may already point at the same name
		f.logger.Error("failed to create file record, blob left in place", "filename", filename, "error", err)
		return uuid.Nil, err
	}
	record.ID = id

	f.logger.Info("file created", "id", id, "filename", filename, "size", written)
	f.publish(ctx, domain.EventTypeFileCreated, record)

	return id, nil
}
