package file

import (
	"context"
	"errors"
	"filepress/internal/core/domain"
	"fmt"
)

// Deliver redeems a download token and opens the blob it grants.
// The caller owns the returned stream.
func (f *fileService) Deliver(ctx context.Context, filename string, salt string) (_ *domain.Delivery, err error) {
	defer func() { observe("deliver", err) }()

	filename = sanitizeFileName(filename)
	salt = sanitizeKey(salt)
	if filename == "" || salt == "" {
		return nil, fmt.Errorf("%w: file and salt are required", domain.ErrValidation)
	}

	ok, err := f.tokens.Redeem(ctx, filename, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to redeem download token: %w", err)
	}
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	content, size, err := f.blobs.Open(ctx, filename)
	if err != nil {
		if !errors.Is(err, domain.ErrBlobNotFound) {
			f.logger.Error("failed to open blob", "filename", filename, "error", err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrFile, err)
	}

	return &domain.Delivery{Filename: filename, Size: size, Content: content}, nil
}
