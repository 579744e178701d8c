package resilience

import "time"

// Clock supplies the current time. Injecting one makes elapsed-time
// behavior, such as a circuit breaker's cool-down, deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
