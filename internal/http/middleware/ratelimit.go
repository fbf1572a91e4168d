package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gatekeeper.app/api/common/ratelimit"
)

// RateLimit enforces a fixed-window submission limit per client IP.
func RateLimit(limiter ratelimit.Limiter, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := limiter.Allow(c.Request.Context(), c.ClientIP(), limit)

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(time.Until(decision.ResetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
