// Package http provides the HTTP server, routing, and middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CustomLoggerMiddleware logs every request with its request id, status and
// latency through slog. It replaces gin's default logger so all output goes
// through the application handler.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		attrs := []any{
			slog.String("request_id", requestid.Get(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}

		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("http request", attrs...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("http request", attrs...)
		default:
			logger.Info("http request", attrs...)
		}
	}
}

// rateLimiterStore holds per-client rate limiters with automatic cleanup.
type rateLimiterStore struct {
	limiters sync.Map // map[string]*rateLimiterEntry keyed by client IP
	rps      float64
	burst    int
}

// rateLimiterEntry holds a rate limiter and last access time for cleanup.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// RateLimitMiddleware enforces per-client rate limiting keyed by client IP.
//
// Uses token bucket algorithm via golang.org/x/time/rate. Each client IP gets
// an independent limiter.
//
// Configuration:
//   - rps: Requests per second allowed per client
//   - burst: Maximum burst capacity for temporary spikes
//
// Returns:
//   - 429 Too Many Requests: Rate limit exceeded (includes Retry-After header)
//   - Continues: Request allowed within rate limit
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &rateLimiterStore{
		rps:   rps,
		burst: burst,
	}

	// Start cleanup goroutine for stale limiters (every 5 minutes)
	go store.cleanupStale(context.Background(), 5*time.Minute)

	return func(c *gin.Context) {
		limiter := store.getLimiter(c.ClientIP())

		if !limiter.Allow() {
			// Calculate retry-after delay
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds())
			reservation.Cancel()

			logger.Debug("rate limit exceeded",
				slog.String("client_ip", c.ClientIP()),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests. Please retry after the specified delay.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getLimiter retrieves or creates a rate limiter for a client IP.
func (s *rateLimiterStore) getLimiter(clientIP string) *rate.Limiter {
	if val, ok := s.limiters.Load(clientIP); ok {
		entry := val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	limiter := rate.NewLimiter(rate.Limit(s.rps), s.burst)
	entry := &rateLimiterEntry{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	s.limiters.Store(clientIP, entry)
	return limiter
}

// cleanupStale removes rate limiters that haven't been accessed recently.
// Runs periodically to prevent unbounded memory growth.
func (s *rateLimiterStore) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Remove limiters not accessed in last hour
			threshold := time.Now().Add(-1 * time.Hour)
			s.limiters.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimiterEntry)
				entry.mu.Lock()
				shouldDelete := entry.lastAccess.Before(threshold)
				entry.mu.Unlock()

				if shouldDelete {
					s.limiters.Delete(key)
				}
				return true
			})
		}
	}
}
