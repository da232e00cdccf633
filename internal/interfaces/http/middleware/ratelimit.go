package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"parlor/internal/shared/logger"
	"parlor/internal/shared/utils"
)

// RateLimiter applies a fixed-window per-IP limit backed by Redis.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	log    logger.Interface
}

func NewRateLimiter(client *redis.Client, requestsPerMinute int, log logger.Interface) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  requestsPerMinute,
		window: time.Minute,
		log:    log.Named("ratelimit"),
	}
}

func (rl *RateLimiter) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.client == nil || rl.limit <= 0 {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		windowBucket := time.Now().Unix() / int64(rl.window.Seconds())
		key := fmt.Sprintf("ratelimit:ip:%s:%d", clientIP, windowBucket)

		count, err := rl.client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			// Redis being down should not take the API down with it.
			rl.log.Warnw("rate limit check failed, allowing request", "error", err, "ip", clientIP)
			c.Next()
			return
		}

		if count == 1 {
			rl.client.Expire(c.Request.Context(), key, rl.window+time.Second)
		}

		if count > int64(rl.limit) {
			rl.log.Warnw("rate limit exceeded", "ip", clientIP, "count", count, "limit", rl.limit)
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many requests, please slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
