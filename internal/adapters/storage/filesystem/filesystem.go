package filesystem

import (
	"context"
	"errors"
	"filepress/internal/config"
	"filepress/internal/core/domain"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Store keeps blobs as plain files in a single directory, keyed by filename
type Store struct {
	dir    string
	locks  *keyLocks
	logger *slog.Logger
}

// NewStore creates the storage directory if needed and returns a Store
func NewStore(cfg config.StorageConfig, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Store{dir: cfg.Dir, locks: newKeyLocks(), logger: logger}, nil
}

func (s *Store) path(filename string) (string, error) {
	if filename == "" || filename == "." || filename == ".." || filename != filepath.Base(filename) {
		return "", fmt.Errorf("%w: invalid blob key", domain.ErrValidation)
	}
	return filepath.Join(s.dir, filename), nil
}

// Save streams content to a temp file then renames it over filename.
// An existing blob with the same name is replaced.
func (s *Store) Save(ctx context.Context, filename string, content io.Reader, size int64) (int64, error) {
	target, err := s.path(filename)
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	written, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: content})
	if err == nil && size >= 0 && written != size {
		err = fmt.Errorf("short write: %d of %d bytes", written, size)
	}
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to write blob: %w", err)
	}

	unlock := s.locks.lock(filename)
	defer unlock()

	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to move blob in place: %w", err)
	}

	return written, nil
}

// Open returns the blob content and its size. The caller must close it.
func (s *Store) Open(ctx context.Context, filename string) (io.ReadCloser, int64, error) {
	target, err := s.path(filename)
	if err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	unlock := s.locks.rlock(filename)
	defer unlock()

	f, err := os.Open(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, domain.ErrBlobNotFound
		}
		return nil, 0, fmt.Errorf("failed to open blob: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("failed to stat blob: %w", err)
	}

	// an open descriptor keeps reading the old inode even if the blob is deleted afterwards
	return f, info.Size(), nil
}

// Delete removes the blob, domain.ErrBlobNotFound when it does not exist
func (s *Store) Delete(ctx context.Context, filename string) error {
	target, err := s.path(filename)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := s.locks.lock(filename)
	defer unlock()

	if err := os.Remove(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ErrBlobNotFound
		}
		return fmt.Errorf("failed to remove blob: %w", err)
	}

	s.logger.Info("blob deleted", "filename", filename)
	return nil
}

// Exists reports whether a blob is stored under filename
func (s *Store) Exists(ctx context.Context, filename string) (bool, error) {
	target, err := s.path(filename)
	if err != nil {
		return false, err
	}

	unlock := s.locks.rlock(filename)
	defer unlock()

	_, err = os.Stat(target)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat blob: %w", err)
	}
}

// ctxReader stops a copy once the request is cancelled
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
