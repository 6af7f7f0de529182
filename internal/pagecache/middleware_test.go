package pagecache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCachedEngine(t *testing.T, store Store, status *int) (*gin.Engine, *int) {
	t.Helper()
	calls := 0
	r := gin.New()
	vary := func(c *gin.Context) string { return c.GetHeader("X-Viewer") }
	r.GET("/", Cache(store, 20*time.Minute, vary), func(c *gin.Context) {
		calls++
		c.String(*status, "render %d page %s", calls, c.Query("page"))
	})
	return r, &calls
}

func get(r http.Handler, target, viewer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if viewer != "" {
		req.Header.Set("X-Viewer", viewer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCacheServesStoredPage(t *testing.T) {
	store, err := NewMemoryStore(10)
	require.NoError(t, err)
	status := http.StatusOK
	r, calls := newCachedEngine(t, store, &status)

	first := get(r, "/", "")
	require.Equal(t, "miss", first.Header().Get(HeaderName))
	require.Equal(t, "render 1 page ", first.Body.String())

	second := get(r, "/", "")
	require.Equal(t, "hit", second.Header().Get(HeaderName))
	require.Equal(t, first.Body.String(), second.Body.String())
	require.Equal(t, "text/plain; charset=utf-8", second.Header().Get("Content-Type"))
	require.Equal(t, 1, *calls)

	// "?page=1" and "/" are the same page
	require.Equal(t, "hit", get(r, "/?page=1", "").Header().Get(HeaderName))
}

func TestCacheKeysByPageAndViewer(t *testing.T) {
	store, err := NewMemoryStore(10)
	require.NoError(t, err)
	status := http.StatusOK
	r, calls := newCachedEngine(t, store, &status)

	get(r, "/", "")
	require.Equal(t, "miss", get(r, "/?page=2", "").Header().Get(HeaderName))
	require.Equal(t, "miss", get(r, "/", "7").Header().Get(HeaderName))
	require.Equal(t, 3, *calls)
}

func TestCacheClear(t *testing.T) {
	store, err := NewMemoryStore(10)
	require.NoError(t, err)
	status := http.StatusOK
	r, calls := newCachedEngine(t, store, &status)

	get(r, "/", "")
	require.NoError(t, store.Clear(context.Background()))
	w := get(r, "/", "")
	require.Equal(t, "miss", w.Header().Get(HeaderName))
	require.Equal(t, "render 2 page ", w.Body.String())
	require.Equal(t, 2, *calls)
}

func TestCacheSkipsErrors(t *testing.T) {
	store, err := NewMemoryStore(10)
	require.NoError(t, err)
	status := http.StatusInternalServerError
	r, calls := newCachedEngine(t, store, &status)

	get(r, "/", "")
	get(r, "/", "")
	require.Equal(t, 2, *calls)
	require.Equal(t, 0, store.Len())
}

func TestKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&utm=x", nil)
	require.Equal(t, "path:/?page=3|anon", Key(req, "anon"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	require.Equal(t, "path:/?page=1|", Key(req, ""))
}
