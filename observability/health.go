package observability

import (
	"context"
	"sort"

	"github.com/kbukum/circuitkit/resilience"
)

// HealthStatus represents the health state of a component or service.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusDegraded HealthStatus = "degraded"
)

// Health describes the health of an individual component.
type Health struct {
	Name    string            `json:"name"`
	Status  HealthStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// ServiceHealth describes the overall health of a service and its components.
type ServiceHealth struct {
	Service    string       `json:"service"`
	Status     HealthStatus `json:"status"`
	Version    string       `json:"version,omitempty"`
	Components []Health     `json:"components,omitempty"`
}

// HealthChecker is implemented by components that can report their health.
type HealthChecker interface {
	CheckHealth(ctx context.Context) Health
}

// NewServiceHealth creates a ServiceHealth with status up.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{
		Service: service,
		Status:  HealthStatusUp,
		Version: version,
	}
}

// AddComponent adds a component health result and degrades overall status if needed.
func (sh *ServiceHealth) AddComponent(ch Health) {
	sh.Components = append(sh.Components, ch)

	switch ch.Status {
	case HealthStatusDown:
		sh.Status = HealthStatusDown
	case HealthStatusDegraded:
		if sh.Status != HealthStatusDown {
			sh.Status = HealthStatusDegraded
		}
	}
}

// BreakerHealth derives service health from the breakers in a registry.
// A closed breaker reports up. Open and half-open breakers report degraded,
// so a service with any tripped breaker is degraded rather than down.
// Components are ordered by breaker name.
func BreakerHealth(service, serviceVersion string, reg *resilience.Registry) *ServiceHealth {
	sh := NewServiceHealth(service, serviceVersion)
	if reg == nil {
		return sh
	}

	states := reg.States()
	names := make([]string, 0, len(states))
	for name := range states {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		state := states[name]
		h := Health{
			Name:    name,
			Status:  HealthStatusUp,
			Details: map[string]string{"state": state.String()},
		}
		switch state {
		case resilience.StateOpen:
			h.Status = HealthStatusDegraded
			h.Message = "circuit open, calls are being rejected"
		case resilience.StateHalfOpen:
			h.Status = HealthStatusDegraded
			h.Message = "circuit half-open, probing recovery"
		}
		sh.AddComponent(h)
	}
	return sh
}
