package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/circuitkit/errors"
	"github.com/kbukum/circuitkit/resilience"
)

const defaultIdleTTL = 3 * time.Minute

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Rate is the number of requests allowed per second per key. Defaults to 10.
	Rate float64
	// Burst is the bucket capacity per key. Defaults to Rate.
	Burst int
	// KeyFunc extracts the rate limit key from a request. Defaults to client IP.
	KeyFunc func(*gin.Context) string
	// IdleTTL is how long an unused key keeps its bucket before it is
	// evicted. Defaults to 3 minutes.
	IdleTTL time.Duration
}

// RateLimit returns a Gin middleware that applies per-key token bucket rate
// limiting. Requests that find the bucket empty are rejected with 429 and
// the unified error body. Buckets for idle keys are evicted periodically.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Rate <= 0 {
		cfg.Rate = 10.0
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPBasedKey
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaultIdleTTL
	}

	store := &limiterStore{
		entries: make(map[string]*limiterEntry),
		rate:    cfg.Rate,
		burst:   cfg.Burst,
		idleTTL: cfg.IdleTTL,
	}
	go store.cleanup()

	return func(c *gin.Context) {
		key := cfg.KeyFunc(c)
		if !store.limiter(key).Allow() {
			appErr := errors.RateLimited()
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}
		c.Next()
	}
}

// IPBasedKey extracts the client IP for use as a rate limit key.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}

// UserBasedKey extracts the user_id from the context, falling back to client IP.
func UserBasedKey(c *gin.Context) string {
	if uid, exists := c.Get("user_id"); exists {
		if s, ok := uid.(string); ok && s != "" {
			return s
		}
	}
	return c.ClientIP()
}

type limiterEntry struct {
	rl       *resilience.RateLimiter
	lastSeen time.Time
}

type limiterStore struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rate    float64
	burst   int
	idleTTL time.Duration
}

// limiter returns the bucket for key, creating one on first sight.
func (s *limiterStore) limiter(key string) *resilience.RateLimiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &limiterEntry{
			rl: resilience.NewRateLimiter(resilience.RateLimiterConfig{
				Name:  key,
				Rate:  s.rate,
				Burst: s.burst,
			}),
		}
		s.entries[key] = e
	}
	e.lastSeen = time.Now()
	return e.rl
}

func (s *limiterStore) cleanup() {
	ticker := time.NewTicker(s.idleTTL)
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		cutoff := time.Now().Add(-s.idleTTL)
		for key, e := range s.entries {
			if e.lastSeen.Before(cutoff) {
				delete(s.entries, key)
			}
		}
		s.mu.Unlock()
	}
}
