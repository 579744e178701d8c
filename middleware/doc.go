// Package middleware provides Gin middleware for resilient HTTP services:
// circuit breaker gating, per-client rate limiting, request ID injection,
// request logging, and panic recovery. Rejections share the errors package
// response shape, so clients see one error format regardless of which layer
// refused them.
//
// Usage:
//
//	cb, err := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("api"))
//	if err != nil {
//		log.Fatal("breaker init failed", logger.Fields("error", err))
//	}
//
//	r := gin.New()
//	r.Use(
//		middleware.RequestID(),
//		middleware.RequestLogger(log),
//		middleware.Recovery(),
//		middleware.RateLimit(middleware.RateLimitConfig{Rate: 100, Burst: 200}),
//		middleware.CircuitBreaker(middleware.CircuitBreakerConfig{Breaker: cb}),
//	)
package middleware
