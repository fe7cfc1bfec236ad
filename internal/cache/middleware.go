package cache

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// bodyCapturer tees the response body so a successful response can be
// stored in the cache after the handler runs.
type bodyCapturer struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCapturer) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapturer) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Middleware serves GET responses for a single route from the cache.
// The key is derived from the route name and the :id path parameter.
// On a hit the cached JSON body is written directly and the handler
// chain is skipped. On a miss the handler runs and a 2xx response is
// stored with ttlOverride (or the cache's default TTL when zero).
func Middleware(c *ResponseCache, route string, ttlOverride time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := Key(route, ctx.Param("id"))

		if body, ok := c.Get(key); ok {
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", body)
			ctx.Abort()
			return
		}

		capturer := &bodyCapturer{
			ResponseWriter: ctx.Writer,
			body:           &bytes.Buffer{},
		}
		ctx.Writer = capturer

		ctx.Next()

		status := ctx.Writer.Status()
		if status >= 200 && status < 300 {
			c.Set(key, capturer.body.Bytes(), ttlOverride)
		}
	}
}
