// internal/middleware/ratelimit_middleware.go
package middleware

import (
	"time"

	xerrors "casino-loyalty-service/internal/pkg/errors"
	"casino-loyalty-service/internal/pkg/ratelimit"
	"casino-loyalty-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware caps requests per client IP within a fixed window.
// A nil limiter disables limiting, which is the case when Redis is not
// configured.
func RateLimitMiddleware(limiter *ratelimit.Limiter, logger *zap.Logger, scope string, max int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		allowed, err := limiter.Allow(c.Request.Context(), scope, c.ClientIP(), max, window)
		if err != nil {
			// Fail open when the limiter backend is unreachable
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			response.FromError(c, "too many requests", xerrors.ErrRateLimited)
			return
		}

		c.Next()
	}
}
