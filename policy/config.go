package policy

import (
	"github.com/kbukum/circuitkit/resilience"
)

// Config bundles optional resilience policies for an execution chain.
// Nil fields are skipped.
type Config struct {
	// CircuitBreaker stops calls to a dependency after repeated failures.
	CircuitBreaker *resilience.CircuitBreakerConfig
	// Retry reattempts failed calls with exponential backoff.
	Retry *resilience.RetryConfig
	// RateLimiter limits the rate of calls using a token bucket.
	RateLimiter *resilience.RateLimiterConfig
	// Bulkhead limits concurrent calls to prevent resource exhaustion.
	Bulkhead *resilience.BulkheadConfig
}

// IsEmpty returns true if no resilience policies are configured.
func (c Config) IsEmpty() bool {
	return c.CircuitBreaker == nil && c.Retry == nil && c.RateLimiter == nil && c.Bulkhead == nil
}
