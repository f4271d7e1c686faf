package badger

import (
	"context"
	"errors"
	"filepress/internal/config"
	"filepress/internal/core/domain"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Cache is a TTL key/value cache backed by BadgerDB.
// Expired entries are invisible to reads and evicted by compaction.
type Cache struct {
	db       *badger.DB
	inMemory bool
	logger   *slog.Logger
}

// NewCache opens a Badger database, in memory when no path is configured
func NewCache(cfg config.TokenConfig, logger *slog.Logger) (*Cache, error) {
	opts := badger.DefaultOptions(cfg.CachePath).WithLogger(nil)
	inMemory := cfg.CachePath == ""
	if inMemory {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open token cache: %w", err)
	}

	return &Cache{db: db, inMemory: inMemory, logger: logger}, nil
}

// Set stores value under key for ttl
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), value).WithTTL(ttl))
	})
	if err != nil {
		return fmt.Errorf("failed to set key: %w", err)
	}
	return nil
}

// Get returns the value stored under key or domain.ErrTokenNotFound
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get key: %w", err)
	}
	return value, nil
}

// RunGC reclaims value log space until ctx is done. No-op in memory.
func (c *Cache) RunGC(ctx context.Context, every time.Duration) {
	if c.inMemory {
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for {
				if err := c.db.RunValueLogGC(0.5); err != nil {
					if !errors.Is(err, badger.ErrNoRewrite) {
						c.logger.Warn("token cache gc failed", "error", err)
					}
					break
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// Close closes the underlying database
func (c *Cache) Close() error {
	return c.db.Close()
}
