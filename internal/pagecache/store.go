// Package pagecache stores rendered responses for a fixed time window.
package pagecache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"yatube/pkg/config"
)

// Page is a rendered response
type Page struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store is a time-expiring map of pages. Implementations are safe for
// concurrent use; readers may see a page stored before a concurrent Clear.
type Store interface {
	Get(ctx context.Context, key string) (*Page, bool)
	Set(ctx context.Context, key string, page *Page, ttl time.Duration)
	Clear(ctx context.Context) error
}

// New returns the store selected by cfg: Redis when a URL is configured,
// otherwise an in-process LRU.
func New(cfg *config.CacheConfig, logger *zap.Logger) (Store, error) {
	if cfg.RedisURL != "" {
		store, err := NewRedisStore(cfg.RedisURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis page cache: %w", err)
		}
		return store, nil
	}

	store, err := NewMemoryStore(cfg.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory page cache: %w", err)
	}
	logger.Info("Using in-memory page cache", zap.Int("size", cfg.Size))
	return store, nil
}
