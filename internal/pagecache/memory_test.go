package pagecache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yatube/pkg/config"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(10)
	require.NoError(t, err)

	now := time.Now()
	store.now = func() time.Time { return now }

	page := &Page{Status: 200, ContentType: "text/html", Body: []byte("feed")}
	store.Set(ctx, "a", page, 20*time.Minute)

	got, ok := store.Get(ctx, "a")
	require.True(t, ok)
	require.Equal(t, page, got)

	_, ok = store.Get(ctx, "missing")
	require.False(t, ok)

	// Still fresh at the edge of the window
	now = now.Add(20 * time.Minute)
	_, ok = store.Get(ctx, "a")
	require.True(t, ok)

	now = now.Add(time.Second)
	_, ok = store.Get(ctx, "a")
	require.False(t, ok)
	require.Equal(t, 0, store.Len())
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(10)
	require.NoError(t, err)

	store.Set(ctx, "a", &Page{Status: 200}, time.Minute)
	store.Set(ctx, "b", &Page{Status: 200}, time.Minute)
	require.Equal(t, 2, store.Len())

	require.NoError(t, store.Clear(ctx))
	_, ok := store.Get(ctx, "a")
	require.False(t, ok)
	require.Equal(t, 0, store.Len())
}

func TestMemoryStoreEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(2)
	require.NoError(t, err)

	store.Set(ctx, "a", &Page{Status: 200}, time.Minute)
	store.Set(ctx, "b", &Page{Status: 200}, time.Minute)
	store.Get(ctx, "a")
	store.Set(ctx, "c", &Page{Status: 200}, time.Minute)

	_, ok := store.Get(ctx, "b")
	require.False(t, ok)
	_, ok = store.Get(ctx, "a")
	require.True(t, ok)
}

func TestNewSelectsMemoryStore(t *testing.T) {
	store, err := New(&config.CacheConfig{TTL: time.Minute, Size: 5}, zap.NewNop())
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, store)

	_, err = New(&config.CacheConfig{TTL: time.Minute, Size: 0}, zap.NewNop())
	require.Error(t, err)
}

func TestRedisStoreConfig(t *testing.T) {
	require.Equal(t, "yatube:page:path:/?page=1|", namespaceKey("path:/?page=1|"))

	_, err := NewRedisStore("not-a-redis-url", zap.NewNop())
	require.Error(t, err)
}
