package pagecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const namespace = "yatube:page:"

// RedisStore keeps pages in Redis so that several server processes share
// one cache window.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore connects to the Redis server at rawURL
func NewRedisStore(rawURL string, logger *zap.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established")
	return &RedisStore{client: client, logger: logger}, nil
}

func namespaceKey(key string) string {
	return namespace + key
}

// Get treats every Redis failure as a miss so that a broken cache only
// costs a render.
func (s *RedisStore) Get(ctx context.Context, key string) (*Page, bool) {
	data, err := s.client.Get(ctx, namespaceKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Page cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		s.logger.Warn("Page cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &page, true
}

func (s *RedisStore) Set(ctx context.Context, key string, page *Page, ttl time.Duration) {
	data, err := json.Marshal(page)
	if err != nil {
		s.logger.Warn("Page cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.client.Set(ctx, namespaceKey(key), data, ttl).Err(); err != nil {
		s.logger.Warn("Page cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Clear deletes every page of the namespace
func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, namespace+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan page cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
