package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type cachedWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *cachedWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheMiddleware serve respostas GET públicas a partir do Redis.
// Sem cliente configurado, vira pass-through.
func CacheMiddleware(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := "cache:" + c.Request.URL.Path + "?" + c.Request.URL.RawQuery

		if body, err := rdb.Get(c.Request.Context(), key).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json", body)
			c.Abort()
			return
		}

		w := &cachedWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w
		c.Next()

		if w.Status() == http.StatusOK && w.body.Len() > 0 {
			_ = rdb.Set(c.Request.Context(), key, w.body.Bytes(), ttl).Err()
		}
	}
}
