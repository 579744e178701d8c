// Package resilience provides patterns for calling unreliable dependencies.
// It includes circuit breaker, retry, bulkhead, and rate limiting patterns.
package resilience

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed allows requests to pass through.
	StateClosed State = iota
	// StateOpen blocks all requests.
	StateOpen
	// StateHalfOpen admits a single trial request to test recovery.
	StateHalfOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned by Execute when the circuit rejects a call
// without invoking the operation.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// IsOpen reports whether err is a circuit breaker rejection.
func IsOpen(err error) bool {
	return errors.Is(err, ErrCircuitOpen)
}

// CircuitBreakerConfig configures a circuit breaker.
type CircuitBreakerConfig struct {
	// Name identifies this circuit breaker for metrics/logging.
	Name string
	// FailureThreshold is the number of consecutive failures that opens the
	// circuit. Must be at least 1.
	FailureThreshold int
	// ResetTimeout is how long the circuit stays open before the next call
	// is admitted as a trial. Must be positive.
	ResetTimeout time.Duration
	// Clock supplies the current time. Nil means the system clock.
	Clock Clock
	// OnStateChange is called on every transition. It runs inside the
	// breaker's critical section and must not call back into the breaker.
	OnStateChange func(name string, from, to State)
}

// DefaultCircuitBreakerConfig returns sensible defaults.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		FailureThreshold: 5,
		ResetTimeout:     60 * time.Second,
	}
}

func (c CircuitBreakerConfig) validate() error {
	if c.FailureThreshold < 1 {
		return fmt.Errorf("circuit breaker %q: FailureThreshold must be at least 1, got %d", c.Name, c.FailureThreshold)
	}
	if c.ResetTimeout <= 0 {
		return fmt.Errorf("circuit breaker %q: ResetTimeout must be positive, got %v", c.Name, c.ResetTimeout)
	}
	return nil
}

// CircuitBreaker implements the circuit breaker pattern.
// It prevents cascading failures by failing fast when a service is unhealthy.
//
// States:
//   - Closed: normal operation, requests pass through
//   - Open: requests are rejected until ResetTimeout has elapsed since the
//     last failure; the move to half-open happens lazily on the next call
//   - Half-Open: exactly one trial request runs; its outcome closes or
//     reopens the circuit, and concurrent calls are rejected meanwhile
type CircuitBreaker struct {
	config CircuitBreakerConfig
	clock  Clock

	mu              sync.RWMutex
	state           State
	generation      uint64
	failures        int
	lastFailureTime time.Time
}

// NewCircuitBreaker creates a new circuit breaker.
// It rejects configurations with a non-positive threshold or timeout.
func NewCircuitBreaker(config CircuitBreakerConfig) (*CircuitBreaker, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return newCircuitBreaker(config), nil
}

// newCircuitBreaker assumes config has already been validated.
func newCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	clock := config.Clock
	if clock == nil {
		clock = systemClock{}
	}
	return &CircuitBreaker{
		config: config,
		clock:  clock,
		state:  StateClosed,
	}
}

// Execute runs the given function through the circuit breaker.
// Returns ErrCircuitOpen without invoking fn if the circuit rejects the
// call; otherwise fn's error is recorded and returned unchanged. A panic
// in fn is recorded as a failure and re-raised.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	gen, err := cb.admit()
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			cb.record(true, gen)
			panic(r)
		}
	}()

	err = fn()
	cb.record(err != nil, gen)
	return err
}

// Name returns the configured circuit breaker name.
func (cb *CircuitBreaker) Name() string {
	return cb.config.Name
}

// State returns the current circuit breaker state. It never transitions:
// an open circuit whose timeout has elapsed still reports open until the
// next call attempt.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// Failures returns the current consecutive failure count.
func (cb *CircuitBreaker) Failures() int {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.failures
}

// Reset returns the circuit breaker to the closed state and clears the
// failure count.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.toState(StateClosed)
	cb.failures = 0
}

// admit decides whether a call may proceed. It returns the generation the
// call was admitted under so that record can tell stale results apart.
func (cb *CircuitBreaker) admit() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.clock.Now().Sub(cb.lastFailureTime) < cb.config.ResetTimeout {
			return 0, ErrCircuitOpen
		}
		// Cool-down elapsed: this call becomes the half-open trial.
		cb.toState(StateHalfOpen)
	case StateHalfOpen:
		// The trial call is still in flight.
		return 0, ErrCircuitOpen
	}
	return cb.generation, nil
}

// record applies a call outcome. Failures always count, no matter when the
// call was admitted: they bump the failure count, refresh lastFailureTime
// (extending an open circuit's cool-down), and reopen a half-open circuit.
// A success closes a half-open circuit only when it comes from the trial
// admitted in the current generation.
func (cb *CircuitBreaker) record(failed bool, gen uint64) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if failed {
		cb.failures++
		cb.lastFailureTime = cb.clock.Now()
		switch cb.state {
		case StateClosed:
			if cb.failures >= cb.config.FailureThreshold {
				cb.toState(StateOpen)
			}
		case StateHalfOpen:
			cb.toState(StateOpen)
		}
		return
	}

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		if gen == cb.generation {
			cb.toState(StateClosed)
		}
	}
}

// toState transitions to a new state. Each transition starts a new
// generation, which invalidates trial results from earlier half-open
// periods.
func (cb *CircuitBreaker) toState(to State) {
	if cb.state == to {
		return
	}

	from := cb.state
	cb.state = to
	cb.generation++

	if to == StateClosed {
		cb.failures = 0
	}

	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.config.Name, from, to)
	}
}
