package token

import (
	"crypto/rand"
	"filepress/internal/config"
	"filepress/internal/core/port"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"time"
)

// KeyPrefix is prepended to the salt to build the cache key of a token
const KeyPrefix = "filePress"

type tokenBroker struct {
	cache   port.TokenCache
	ttl     time.Duration
	saltMax int64
	now     func() time.Time
	logger  *slog.Logger
}

// Option customizes the broker
type Option func(*tokenBroker)

// WithClock replaces the wall clock used to stamp and check expiry
func WithClock(now func() time.Time) Option {
	return func(b *tokenBroker) {
		b.now = now
	}
}

// NewTokenBroker creates a new download token broker
func NewTokenBroker(cache port.TokenCache, cfg config.TokenConfig, logger *slog.Logger, opts ...Option) port.DownloadTokenBroker {
	b := &tokenBroker{
		cache:   cache,
		ttl:     cfg.TTL,
		saltMax: cfg.SaltMax,
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CacheKey derives the cache key for a salt
func CacheKey(salt string) string {
	return KeyPrefix + salt
}

func formatSalt(salt int64) string {
	return strconv.FormatInt(salt, 10)
}

// randomSalt draws a salt in [0, saltMax]
func (b *tokenBroker) randomSalt() (int64, error) {
	if b.saltMax < 0 {
		return 0, fmt.Errorf("failed to draw salt: negative bound %d", b.saltMax)
	}
	upper := new(big.Int).Add(big.NewInt(b.saltMax), big.NewInt(1))
	n, err := rand.Int(rand.Reader, upper)
	if err != nil {
		return 0, fmt.Errorf("failed to draw salt: %w", err)
	}
	return n.Int64(), nil
}
