package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatwarden/internal/infrastructure/ratelimit"
	"chatwarden/internal/shared/logger"
	"chatwarden/internal/shared/utils"
)

// RateLimit throttles requests per client IP using the shared limiter. A
// limiter backend failure lets the request through rather than blocking all
// traffic.
func RateLimit(limiter ratelimit.RateLimiter, config ratelimit.RateLimitConfig, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP(), config)
		if err != nil {
			log.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
