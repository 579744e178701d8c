// Package httpclient provides a configurable HTTP client with built-in
// authentication, TLS, resilience (retry, circuit breaker, rate limiting),
// and streaming support.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/users/123",
//	})
//
// # With Resilience
//
// The rate limiter waits before each attempt, the circuit breaker gates the
// call, and the retry loop wraps both:
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL:        "https://api.example.com",
//	    Retry:          httpclient.DefaultRetryConfig(),
//	    CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("my-api"),
//	})
//
// # Typed REST Helpers
//
//	user, err := httpclient.Get[User](client, ctx, "/users/123")
package httpclient
