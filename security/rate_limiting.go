package security

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redis     *redis.Client
	window    time.Duration
	threshold int64
}

func NewRateLimiter(redisClient *redis.Client, window time.Duration, threshold int) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if threshold <= 0 {
		threshold = 30
	}
	return &RateLimiter{
		redis:     redisClient,
		window:    window,
		threshold: int64(threshold),
	}
}

// RegistrationLimit rate limits the public registration endpoint by client
// IP using a fixed INCR-with-TTL window.
func (r *RateLimiter) RegistrationLimit() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		key := fmt.Sprintf("ratelimit:register:%s", e.RealIP())

		allowed, err := r.allow(e.Request.Context(), key)
		if err == nil && !allowed {
			return apis.NewApiError(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
		}

		return e.Next()
	}
}

// AntiBotFilter rejects requests with obviously scripted user agents.
func (r *RateLimiter) AntiBotFilter() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userAgent := e.Request.Header.Get("User-Agent")
		if r.isSuspiciousUserAgent(userAgent) {
			return apis.NewForbiddenError("Access denied", nil)
		}

		return e.Next()
	}
}

func (r *RateLimiter) allow(ctx context.Context, key string) (bool, error) {
	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		// Redis being down should not block registrations.
		return true, err
	}

	if count == 1 {
		r.redis.Expire(ctx, key, r.window)
	}

	return count <= r.threshold, nil
}

func (r *RateLimiter) isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}
