package policy

import (
	"context"
	stderrors "errors"

	"github.com/kbukum/circuitkit/errors"
	"github.com/kbukum/circuitkit/resilience"
)

// Policy holds initialized resilience primitives built from a Config.
type Policy struct {
	name string
	cb   *resilience.CircuitBreaker
	rl   *resilience.RateLimiter
	bh   *resilience.Bulkhead
	// Retry config is stored as-is since resilience.Retry is a function, not a struct.
	retryCfg *resilience.RetryConfig
}

// New creates initialized resilience primitives from config. An empty config
// returns a nil Policy; Execute on a nil Policy runs the call directly.
// Circuit breaker construction fails on invalid configuration.
func New(cfg Config) (*Policy, error) {
	if cfg.IsEmpty() {
		return nil, nil
	}
	p := &Policy{
		name:     policyName(cfg),
		retryCfg: cfg.Retry,
	}
	if cfg.CircuitBreaker != nil {
		cb, err := resilience.NewCircuitBreaker(*cfg.CircuitBreaker)
		if err != nil {
			return nil, err
		}
		p.cb = cb
	}
	if cfg.RateLimiter != nil {
		p.rl = resilience.NewRateLimiter(*cfg.RateLimiter)
	}
	if cfg.Bulkhead != nil {
		p.bh = resilience.NewBulkhead(*cfg.Bulkhead)
	}
	return p, nil
}

// policyName picks the policy name from the first named sub-config.
func policyName(cfg Config) string {
	if cfg.CircuitBreaker != nil && cfg.CircuitBreaker.Name != "" {
		return cfg.CircuitBreaker.Name
	}
	if cfg.Bulkhead != nil && cfg.Bulkhead.Name != "" {
		return cfg.Bulkhead.Name
	}
	if cfg.RateLimiter != nil && cfg.RateLimiter.Name != "" {
		return cfg.RateLimiter.Name
	}
	return "policy"
}

// Name returns the policy name.
func (p *Policy) Name() string {
	if p == nil {
		return ""
	}
	return p.name
}

// Breaker returns the underlying circuit breaker, or nil if none is configured.
func (p *Policy) Breaker() *resilience.CircuitBreaker {
	if p == nil {
		return nil
	}
	return p.cb
}

// Execute runs fn through the resilience chain:
// RateLimiter.Wait → Bulkhead → CircuitBreaker → Retry → fn.
// Resilience sentinel errors are wrapped as AppError with the sentinel
// preserved in the cause chain.
func Execute[T any](ctx context.Context, p *Policy, fn func() (T, error)) (T, error) {
	if p == nil {
		return fn()
	}

	// Layer 1: Rate limiter (wait for token)
	if p.rl != nil {
		if err := p.rl.Wait(ctx); err != nil {
			var zero T
			return zero, p.wrapError(err)
		}
	}

	// Build the innermost call: retry wrapping fn, or bare fn
	call := fn
	if p.retryCfg != nil {
		retryCfg := *p.retryCfg
		call = func() (T, error) {
			return resilience.Retry(ctx, retryCfg, fn)
		}
	}

	// Layer 2: Circuit breaker wrapping call
	if p.cb != nil {
		cbCall := call
		call = func() (T, error) {
			var result T
			var resultErr error
			cbErr := p.cb.Execute(func() error {
				result, resultErr = cbCall()
				return resultErr
			})
			if cbErr != nil && resultErr == nil {
				return result, p.wrapError(cbErr)
			}
			return result, resultErr
		}
	}

	// Layer 3: Bulkhead wrapping everything
	if p.bh != nil {
		bhCall := call
		result, err := resilience.ExecuteWithResult(ctx, p.bh, func() (T, error) {
			return bhCall()
		})
		if err != nil {
			return result, p.wrapError(err)
		}
		return result, nil
	}

	return call()
}

// ExecuteFunc runs a result-less operation through the chain.
func ExecuteFunc(ctx context.Context, p *Policy, fn func() error) error {
	_, err := Execute(ctx, p, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// wrapError converts resilience sentinel errors to AppError for consistent
// error handling across the stack. The sentinel stays reachable via the
// cause chain.
func (p *Policy) wrapError(err error) error {
	if err == nil {
		return nil
	}

	// Already an AppError — return as-is
	if _, ok := errors.AsAppError(err); ok {
		return err
	}

	switch {
	case stderrors.Is(err, resilience.ErrCircuitOpen):
		return errors.CircuitOpen(p.name).WithCause(err)
	case stderrors.Is(err, resilience.ErrRateLimited):
		return errors.RateLimited().WithCause(err)
	case stderrors.Is(err, resilience.ErrBulkheadFull), stderrors.Is(err, resilience.ErrBulkheadTimeout):
		return errors.ConcurrencyLimited(p.name).WithCause(err)
	case stderrors.Is(err, context.Canceled):
		return errors.Timeout("request canceled").WithCause(err)
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Timeout("deadline exceeded").WithCause(err)
	default:
		return err
	}
}
