package token

import (
	"context"
	"encoding/json"
	"filepress/internal/core/domain"
	"fmt"
)

func (b *tokenBroker) Issue(ctx context.Context, filename string) (*domain.DownloadToken, error) {

	salt, err := b.randomSalt()
	if err != nil {
		return nil, err
	}

	now := b.now()
	token := domain.DownloadToken{
		Salt:      salt,
		Filename:  filename,
		IssuedAt:  now,
		ExpiresAt: now.Add(b.ttl),
	}

	data, err := json.Marshal(token)
	if err != nil {
		return nil, fmt.Errorf("failed to encode download token: %w", err)
	}

	// a salt drawn twice inside the window overwrites the older token
	if err := b.cache.Set(ctx, CacheKey(formatSalt(salt)), data, b.ttl); err != nil {
		return nil, fmt.Errorf("failed to store download token: %w", err)
	}

	b.logger.Debug("download token issued", "filename", filename, "expires_at", token.ExpiresAt)

	return &token, nil
}
