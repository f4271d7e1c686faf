package port

import (
	"context"
	"filepress/internal/core/domain"
	"time"
)

// TokenCache is a short-TTL key/value store
type TokenCache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// DownloadTokenBroker issues and redeems download tokens
type DownloadTokenBroker interface {
	Issue(ctx context.Context, filename string) (*domain.DownloadToken, error)
	Redeem(ctx context.Context, filename string, salt string) (bool, error)
}
