// Package policy composes resilience patterns into a single execution chain.
//
// A Policy bundles an optional rate limiter, bulkhead, circuit breaker, and
// retry config. Execution order: RateLimiter.Wait → Bulkhead → CircuitBreaker
// → Retry → fn. Nil fields are skipped, and an empty config produces a nil
// Policy that executes calls directly.
//
//	cfg := policy.Config{
//	    CircuitBreaker: &resilience.CircuitBreakerConfig{Name: "payments", FailureThreshold: 5, ResetTimeout: time.Minute},
//	    Retry:          &resilience.RetryConfig{MaxAttempts: 3, InitialBackoff: 100 * time.Millisecond},
//	}
//	p, err := policy.New(cfg)
//	result, err := policy.Execute(ctx, p, fetchInvoice)
//
// Resilience sentinel errors are wrapped into errors.AppError values with the
// sentinel preserved in the cause chain, so errors.Is still matches.
package policy
