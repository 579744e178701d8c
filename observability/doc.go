// Package observability provides OpenTelemetry tracing and metrics integration
// for circuit breaker instrumentation.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "my.operation")
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewBreakerMetrics(observability.Meter("my-service"))
//	cb, err := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//		Name:          "payments",
//		OnStateChange: observability.StateChangeHook(metrics, logger.GetGlobalLogger()),
//	})
//
// Health Checks:
//
//	health := observability.BreakerHealth("my-service", version.Version, registry)
package observability
