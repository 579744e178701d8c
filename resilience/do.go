package resilience

// Do runs a result-returning function through the circuit breaker.
// When the circuit rejects the call it returns the zero value of T and
// ErrCircuitOpen.
func Do[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(func() error {
		var ferr error
		result, ferr = fn()
		return ferr
	})
	return result, err
}
