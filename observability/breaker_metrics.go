package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kbukum/circuitkit/logger"
	"github.com/kbukum/circuitkit/resilience"
)

// Call outcomes recorded on the breaker.calls counter.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// BreakerMetrics holds OpenTelemetry instruments for circuit breaker observability.
type BreakerMetrics struct {
	transitions  metric.Int64Counter
	calls        metric.Int64Counter
	callDuration metric.Float64Histogram
	rejections   metric.Int64Counter
	state        metric.Int64Gauge
}

// NewBreakerMetrics creates breaker metric instruments on the given meter.
func NewBreakerMetrics(meter metric.Meter) (*BreakerMetrics, error) {
	transitions, err := meter.Int64Counter("breaker.transitions",
		metric.WithDescription("Total circuit breaker state transitions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating breaker.transitions counter: %w", err)
	}

	calls, err := meter.Int64Counter("breaker.calls",
		metric.WithDescription("Total calls executed through a circuit breaker"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating breaker.calls counter: %w", err)
	}

	callDuration, err := meter.Float64Histogram("breaker.call.duration",
		metric.WithDescription("Duration of calls executed through a circuit breaker in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating breaker.call.duration histogram: %w", err)
	}

	rejections, err := meter.Int64Counter("breaker.rejections",
		metric.WithDescription("Total calls rejected without invoking the operation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating breaker.rejections counter: %w", err)
	}

	state, err := meter.Int64Gauge("breaker.state",
		metric.WithDescription("Current circuit breaker state (0 closed, 1 open, 2 half-open)"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating breaker.state gauge: %w", err)
	}

	return &BreakerMetrics{
		transitions:  transitions,
		calls:        calls,
		callDuration: callDuration,
		rejections:   rejections,
		state:        state,
	}, nil
}

// RecordTransition records a state transition and updates the state gauge.
func (m *BreakerMetrics) RecordTransition(ctx context.Context, breaker string, from, to resilience.State) {
	m.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrBreakerName, breaker),
		attribute.String("from", from.String()),
		attribute.String("to", to.String()),
	))
	m.state.Record(ctx, int64(to), metric.WithAttributes(
		attribute.String(AttrBreakerName, breaker),
	))
}

// RecordCall records a completed call with its outcome and duration.
func (m *BreakerMetrics) RecordCall(ctx context.Context, breaker, outcome string, duration time.Duration) {
	m.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrBreakerName, breaker),
		attribute.String("outcome", outcome),
	))
	m.callDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrBreakerName, breaker),
	))
}

// RecordRejection records a call the breaker refused without invoking the operation.
func (m *BreakerMetrics) RecordRejection(ctx context.Context, breaker string) {
	m.rejections.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrBreakerName, breaker),
	))
}

// ObserveCall runs fn under a traced span and records call metrics.
// The returned error is fn's error, unchanged.
func (m *BreakerMetrics) ObserveCall(ctx context.Context, breaker string, fn func() error) error {
	start := time.Now()
	ctx, span := StartSpan(ctx, SpanBreakerCall)
	span.SetAttributes(attribute.String(AttrBreakerName, breaker))

	err := fn()

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}
	span.SetAttributes(
		attribute.String(AttrStatus, outcome),
		attribute.Int64(AttrDurationMs, time.Since(start).Milliseconds()),
	)
	span.End()

	m.RecordCall(ctx, breaker, outcome, time.Since(start))
	return err
}

// StateChangeHook builds an OnStateChange callback that logs transitions and
// records them on the given metrics. Either argument may be nil. The callback
// runs inside the breaker's state lock and must not call back into the breaker.
func StateChangeHook(metrics *BreakerMetrics, log *logger.Logger) func(name string, from, to resilience.State) {
	return func(name string, from, to resilience.State) {
		if log != nil {
			fields := logger.TransitionFields(name, from.String(), to.String())
			if to == resilience.StateOpen {
				log.Warn("circuit breaker opened", fields)
			} else {
				log.Info("circuit breaker state changed", fields)
			}
		}
		if metrics != nil {
			metrics.RecordTransition(context.Background(), name, from, to)
		}
	}
}
