package minio

import (
	"context"
	"filepress/internal/config"
	"filepress/internal/core/domain"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const noSuchKey = "NoSuchKey"

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter, creating the bucket when missing
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// Save uploads content under filename, replacing any existing object
func (a *Adapter) Save(ctx context.Context, filename string, content io.Reader, size int64) (int64, error) {
	info, err := a.client.PutObject(ctx, a.config.BucketName, filename, content, size, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return 0, fmt.Errorf("failed to put object: %w", err)
	}

	a.logger.Debug("object stored",
		slog.String("filename", filename),
		slog.Int64("size", info.Size))

	return info.Size, nil
}

// Open returns a reader on the object and its size
func (a *Adapter) Open(ctx context.Context, filename string) (io.ReadCloser, int64, error) {
	object, err := a.client.GetObject(ctx, a.config.BucketName, filename, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get object: %w", err)
	}

	// GetObject is lazy, Stat surfaces a missing key
	info, err := object.Stat()
	if err != nil {
		_ = object.Close()
		if isNotFound(err) {
			return nil, 0, domain.ErrBlobNotFound
		}
		return nil, 0, fmt.Errorf("failed to stat object: %w", err)
	}

	return object, info.Size, nil
}

// Delete removes an object. RemoveObject succeeds on missing keys so the key is checked first.
func (a *Adapter) Delete(ctx context.Context, filename string) error {
	exists, err := a.Exists(ctx, filename)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrBlobNotFound
	}

	if err := a.client.RemoveObject(ctx, a.config.BucketName, filename, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	a.logger.Info("object deleted",
		slog.String("filename", filename),
		slog.String("bucket", a.config.BucketName))

	return nil
}

// Exists reports whether an object is stored under filename
func (a *Adapter) Exists(ctx context.Context, filename string) (bool, error) {
	_, err := a.client.StatObject(ctx, a.config.BucketName, filename, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get object info: %w", err)
	}
	return true, nil
}

func isNotFound(err error) bool {
	return minio.ToErrorResponse(err).Code == noSuchKey
}
