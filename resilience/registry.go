package resilience

import "sync"

// Registry manages a set of named circuit breakers sharing one
// configuration. Breakers are created on first use, so callers can protect
// any number of downstream dependencies without pre-registering them.
type Registry struct {
	defaults CircuitBreakerConfig

	mu       sync.RWMutex
	breakers map[string]*CircuitBreaker
}

// NewRegistry creates a registry. Every breaker it creates uses the given
// configuration with Name replaced by the breaker's name. The configuration
// is validated once, here.
func NewRegistry(defaults CircuitBreakerConfig) (*Registry, error) {
	if err := defaults.validate(); err != nil {
		return nil, err
	}
	return &Registry{
		defaults: defaults,
		breakers: make(map[string]*CircuitBreaker),
	}, nil
}

// Get returns the breaker for name, creating it on first use.
func (r *Registry) Get(name string) *CircuitBreaker {
	r.mu.RLock()
	cb, ok := r.breakers[name]
	r.mu.RUnlock()
	if ok {
		return cb
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cb, ok := r.breakers[name]; ok {
		return cb
	}

	config := r.defaults
	config.Name = name
	cb = newCircuitBreaker(config)
	r.breakers[name] = cb
	return cb
}

// Lookup returns the breaker for name without creating one.
func (r *Registry) Lookup(name string) (*CircuitBreaker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cb, ok := r.breakers[name]
	return cb, ok
}

// States returns a snapshot of every registered breaker's state.
func (r *Registry) States() map[string]State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	states := make(map[string]State, len(r.breakers))
	for name, cb := range r.breakers {
		states[name] = cb.State()
	}
	return states
}

// Reset returns the named breaker to the closed state. It reports whether
// the breaker existed.
func (r *Registry) Reset(name string) bool {
	cb, ok := r.Lookup(name)
	if ok {
		cb.Reset()
	}
	return ok
}
