package middleware

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/circuitkit/errors"
	"github.com/kbukum/circuitkit/resilience"
)

// HeaderCircuitState is set on rejected responses and exposes the breaker
// state to clients.
const HeaderCircuitState = "X-Circuit-State"

// CircuitBreakerConfig configures the circuit breaker middleware.
type CircuitBreakerConfig struct {
	// Breaker gates every request passing through the middleware. Required.
	Breaker *resilience.CircuitBreaker
	// FailureStatus is the lowest response status recorded as a failure.
	// Defaults to 500, so 4xx responses never trip the circuit.
	FailureStatus int
}

// CircuitBreaker returns a Gin middleware that routes requests through a
// circuit breaker. Handler responses at or above FailureStatus count as
// failures. While the circuit is open, requests are rejected with 503 and
// the unified error body before reaching the handler.
func CircuitBreaker(cfg CircuitBreakerConfig) gin.HandlerFunc {
	if cfg.FailureStatus <= 0 {
		cfg.FailureStatus = http.StatusInternalServerError
	}
	return func(c *gin.Context) {
		err := cfg.Breaker.Execute(func() error {
			c.Next()
			if status := c.Writer.Status(); status >= cfg.FailureStatus {
				// The response is already written; this error only feeds
				// the breaker's failure count.
				return fmt.Errorf("handler returned status %d", status)
			}
			return nil
		})
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			appErr := errors.CircuitOpen(cfg.Breaker.Name())
			c.Header(HeaderCircuitState, cfg.Breaker.State().String())
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
		}
	}
}
