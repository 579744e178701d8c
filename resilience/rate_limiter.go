package resilience

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when a call is refused because the token
// bucket is empty.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimiterConfig configures a rate limiter.
type RateLimiterConfig struct {
	// Name identifies this rate limiter for metrics/logging.
	Name string
	// Rate is the number of requests allowed per second.
	Rate float64
	// Burst is the maximum burst size.
	Burst int
	// OnLimit is called when a request is rate limited.
	OnLimit func(name string)
}

// DefaultRateLimiterConfig returns sensible defaults.
func DefaultRateLimiterConfig(name string) RateLimiterConfig {
	return RateLimiterConfig{
		Name:  name,
		Rate:  10.0,
		Burst: 20,
	}
}

// RateLimiter is a token bucket limiter built on golang.org/x/time/rate.
// It smooths the request rate sent to a dependency and can either reject
// (Allow/Execute) or block (Wait/ExecuteWait) when the bucket runs dry.
type RateLimiter struct {
	config  RateLimiterConfig
	limiter *rate.Limiter
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.Rate <= 0 {
		config.Rate = 10.0
	}
	if config.Burst <= 0 {
		// Fractional rates truncate to zero, which would never admit a call.
		config.Burst = int(config.Rate)
		if config.Burst < 1 {
			config.Burst = 1
		}
	}
	return &RateLimiter{
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(config.Rate), config.Burst),
	}
}

// Allow reports whether one request may proceed right now.
func (rl *RateLimiter) Allow() bool {
	return rl.AllowN(1)
}

// AllowN reports whether n requests may proceed right now.
func (rl *RateLimiter) AllowN(n int) bool {
	if rl.limiter.AllowN(time.Now(), n) {
		return true
	}
	if rl.config.OnLimit != nil {
		rl.config.OnLimit(rl.config.Name)
	}
	return false
}

// Wait blocks until one request may proceed or ctx ends.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.WaitN(ctx, 1)
}

// WaitN blocks until n requests may proceed or ctx ends. It returns the
// context error on cancellation, or ErrRateLimited when the request can
// never be served (n exceeds the burst, or the wait would overrun the
// context deadline).
func (rl *RateLimiter) WaitN(ctx context.Context, n int) error {
	err := rl.limiter.WaitN(ctx, n)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if rl.config.OnLimit != nil {
		rl.config.OnLimit(rl.config.Name)
	}
	return ErrRateLimited
}

// Execute runs fn if the rate limit allows, otherwise returns
// ErrRateLimited without invoking it.
func (rl *RateLimiter) Execute(fn func() error) error {
	if !rl.Allow() {
		return ErrRateLimited
	}
	return fn()
}

// ExecuteWait blocks until the rate limit allows, then runs fn.
func (rl *RateLimiter) ExecuteWait(ctx context.Context, fn func() error) error {
	if err := rl.Wait(ctx); err != nil {
		return err
	}
	return fn()
}

// Tokens returns the number of tokens available now.
func (rl *RateLimiter) Tokens() float64 {
	return rl.limiter.Tokens()
}

// Rate returns the refill rate in requests per second.
func (rl *RateLimiter) Rate() float64 {
	return float64(rl.limiter.Limit())
}

// Burst returns the burst size.
func (rl *RateLimiter) Burst() int {
	return rl.limiter.Burst()
}
