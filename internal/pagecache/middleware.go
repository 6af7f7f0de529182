package pagecache

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderName reports whether a response was served from the cache
const HeaderName = "X-Page-Cache"

// Key identifies a page by request path plus page number. vary separates
// pages rendered for different viewers.
func Key(r *http.Request, vary string) string {
	page := r.URL.Query().Get("page")
	if page == "" {
		page = "1"
	}
	return "path:" + r.URL.Path + "?page=" + page + "|" + vary
}

type recorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache serves GET requests from store and stores successful responses for
// ttl. vary may be nil.
func Cache(store Store, ttl time.Duration, vary func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		variant := ""
		if vary != nil {
			variant = vary(c)
		}
		key := Key(c.Request, variant)

		if page, ok := store.Get(c.Request.Context(), key); ok {
			c.Header(HeaderName, "hit")
			c.Data(page.Status, page.ContentType, page.Body)
			c.Abort()
			return
		}

		c.Header(HeaderName, "miss")
		w := &recorder{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		if w.Status() != http.StatusOK {
			return
		}
		store.Set(c.Request.Context(), key, &Page{
			Status:      w.Status(),
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		}, ttl)
	}
}
