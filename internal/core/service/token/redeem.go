package token

import (
	"context"
	"encoding/json"
	"errors"
	"filepress/internal/core/domain"
	"fmt"
)

// Redeem checks a presented salt against the cached token.
// The token stays valid until it expires, it is not consumed.
func (b *tokenBroker) Redeem(ctx context.Context, filename string, salt string) (bool, error) {

	data, err := b.cache.Get(ctx, CacheKey(salt))
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read download token: %w", err)
	}

	var token domain.DownloadToken
	if err := json.Unmarshal(data, &token); err != nil {
		return false, fmt.Errorf("failed to decode download token: %w", err)
	}

	switch {
	case formatSalt(token.Salt) != salt:
		return false, nil
	case token.Filename != filename:
		b.logger.Warn("download token presented for another file", "filename", filename)
		return false, nil
	case token.Expired(b.now()):
		return false, nil
	default:
		return true, nil
	}
}
