package middleware

import (
	"net/http"
	"time"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/gin-gonic/gin"
)

// RateLimiter counts requests per IP, method and route in Redis. Without a
// Redis client every request passes.
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		rdb := config.RedisClient
		if rdb == nil || maxRequests <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		ip := c.ClientIP()
		endpoint := c.FullPath() // /api/v1/wizard/results, /api/v1/admin/products/:id, etc.
		method := c.Request.Method

		// Key is per-IP, per-method, per-endpoint
		key := "rl:" + ip + ":" + method + ":" + endpoint
		resetKey := key + ":resetAt"

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Fail open: losing Redis must not take the wizard down
			config.Log.Warnf("[rate-limit] redis error: %v", err)
			c.Next()
			return
		}

		// First request → set expiry and stable resetAt
		if count == 1 {
			rdb.Expire(ctx, key, window)
			resetAt := time.Now().Add(window)
			rdb.Set(ctx, resetKey, resetAt.Unix(), window)
		}

		resetAtUnix, _ := rdb.Get(ctx, resetKey).Int64()
		rate := rateInfo(maxRequests, count, time.Unix(resetAtUnix, 0), time.Now())

		// Store in context for controllers
		c.Set("rateLimiter", rate)

		if int(count) > maxRequests {
			c.JSON(http.StatusTooManyRequests, models.ApiResponse{
				Message: "Too many requests",
				Error:   true,
				Rate:    rate,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// rateInfo clamps remaining requests and seconds-to-reset at zero.
func rateInfo(limit int, count int64, resetAt, now time.Time) *models.RateLimiter {
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	resetIn := int(resetAt.Sub(now).Seconds())
	if resetIn < 0 {
		resetIn = 0
	}
	return &models.RateLimiter{
		Limit:          limit,
		Remaining:      remaining,
		ResetAt:        resetAt,
		ResetInSeconds: resetIn,
	}
}
