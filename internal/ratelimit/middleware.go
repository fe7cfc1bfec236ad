package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Middleware gates every request through the limiter, keyed by client IP.
// A rejected request is answered with 429 and aborted before any later
// middleware or handler (cache, service) runs.
func Middleware(limiter *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		dec := limiter.Allow(c.ClientIP())
		if !dec.Allowed {
			retryAfter := int(dec.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
