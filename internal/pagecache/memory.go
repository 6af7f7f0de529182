package pagecache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type item struct {
	page      *Page
	expiresAt time.Time
}

// MemoryStore is an LRU of pages, each with its own expiry
type MemoryStore struct {
	lruCache *lru.Cache[string, item]
	now      func() time.Time
}

// NewMemoryStore creates a store holding at most size pages
func NewMemoryStore(size int) (*MemoryStore, error) {
	l, err := lru.New[string, item](size)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{lruCache: l, now: time.Now}, nil
}

// Get returns the page under key, or false if absent or expired
func (s *MemoryStore) Get(_ context.Context, key string) (*Page, bool) {
	val, ok := s.lruCache.Get(key)
	if !ok {
		return nil, false
	}

	if s.now().After(val.expiresAt) {
		s.lruCache.Remove(key)
		return nil, false
	}

	return val.page, true
}

func (s *MemoryStore) Set(_ context.Context, key string, page *Page, ttl time.Duration) {
	s.lruCache.Add(key, item{
		page:      page,
		expiresAt: s.now().Add(ttl),
	})
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.lruCache.Purge()
	return nil
}

// Len reports how many pages are held, expired ones included
func (s *MemoryStore) Len() int {
	return s.lruCache.Len()
}
