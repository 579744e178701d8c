package config

import (
	"time"

	"github.com/kbukum/circuitkit/logger"
	"github.com/kbukum/circuitkit/resilience"
	"github.com/kbukum/circuitkit/validation"
)

// Settings is the top-level configuration for a service using circuitkit.
// Projects embed or load it directly via LoadConfig.
type Settings struct {
	Service    ServiceSettings            `yaml:"service" mapstructure:"service"`
	Logging    logger.Config              `yaml:"logging" mapstructure:"logging"`
	Telemetry  TelemetrySettings          `yaml:"telemetry" mapstructure:"telemetry"`
	Resilience ResilienceSettings         `yaml:"resilience" mapstructure:"resilience"`
	Breakers   map[string]BreakerSettings `yaml:"breakers" mapstructure:"breakers"`
}

// ServiceSettings identifies the service.
type ServiceSettings struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// TelemetrySettings configures the OpenTelemetry exporters.
type TelemetrySettings struct {
	Enabled     bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint    string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure    bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio" mapstructure:"sample_ratio"`
}

// ResilienceSettings holds the default configuration for each resilience
// pattern. Per-breaker overrides live in Settings.Breakers.
type ResilienceSettings struct {
	CircuitBreaker BreakerSettings   `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
	Retry          RetrySettings     `yaml:"retry" mapstructure:"retry"`
	RateLimit      RateLimitSettings `yaml:"rate_limit" mapstructure:"rate_limit"`
	Bulkhead       BulkheadSettings  `yaml:"bulkhead" mapstructure:"bulkhead"`
}

// BreakerSettings configures a circuit breaker.
type BreakerSettings struct {
	FailureThreshold int           `yaml:"failure_threshold" mapstructure:"failure_threshold"`
	ResetTimeout     time.Duration `yaml:"reset_timeout" mapstructure:"reset_timeout"`
}

// CircuitBreakerConfig converts the settings to a resilience config.
func (s BreakerSettings) CircuitBreakerConfig(name string) resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(name)
	if s.FailureThreshold > 0 {
		cfg.FailureThreshold = s.FailureThreshold
	}
	if s.ResetTimeout > 0 {
		cfg.ResetTimeout = s.ResetTimeout
	}
	return cfg
}

// RetrySettings configures retry behavior.
type RetrySettings struct {
	MaxAttempts    int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff" mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff" mapstructure:"max_backoff"`
	BackoffFactor  float64       `yaml:"backoff_factor" mapstructure:"backoff_factor"`
	Jitter         float64       `yaml:"jitter" mapstructure:"jitter"`
}

// RetryConfig converts the settings to a resilience config.
func (s RetrySettings) RetryConfig() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	if s.MaxAttempts > 0 {
		cfg.MaxAttempts = s.MaxAttempts
	}
	if s.InitialBackoff > 0 {
		cfg.InitialBackoff = s.InitialBackoff
	}
	if s.MaxBackoff > 0 {
		cfg.MaxBackoff = s.MaxBackoff
	}
	if s.BackoffFactor > 0 {
		cfg.BackoffFactor = s.BackoffFactor
	}
	if s.Jitter > 0 {
		cfg.Jitter = s.Jitter
	}
	return cfg
}

// RateLimitSettings configures a token-bucket rate limiter.
type RateLimitSettings struct {
	Rate  float64 `yaml:"rate" mapstructure:"rate"`
	Burst int     `yaml:"burst" mapstructure:"burst"`
}

// RateLimiterConfig converts the settings to a resilience config.
func (s RateLimitSettings) RateLimiterConfig(name string) resilience.RateLimiterConfig {
	cfg := resilience.DefaultRateLimiterConfig(name)
	if s.Rate > 0 {
		cfg.Rate = s.Rate
	}
	if s.Burst > 0 {
		cfg.Burst = s.Burst
	}
	return cfg
}

// BulkheadSettings configures a concurrency limiter.
type BulkheadSettings struct {
	MaxConcurrent int           `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	MaxWait       time.Duration `yaml:"max_wait" mapstructure:"max_wait"`
}

// BulkheadConfig converts the settings to a resilience config.
func (s BulkheadSettings) BulkheadConfig(name string) resilience.BulkheadConfig {
	cfg := resilience.DefaultBulkheadConfig(name)
	if s.MaxConcurrent > 0 {
		cfg.MaxConcurrent = s.MaxConcurrent
	}
	if s.MaxWait > 0 {
		cfg.MaxWait = s.MaxWait
	}
	return cfg
}

// ApplyDefaults applies default values to all settings.
func (s *Settings) ApplyDefaults() {
	if s.Service.Environment == "" {
		s.Service.Environment = "development"
	}
	if s.Service.Environment == "development" {
		s.Service.Debug = true
	}
	s.Logging.ApplyDefaults()

	if s.Telemetry.Endpoint == "" {
		s.Telemetry.Endpoint = "localhost:4318"
	}
	if s.Telemetry.SampleRatio == 0 {
		s.Telemetry.SampleRatio = 1.0
	}

	if s.Resilience.CircuitBreaker.FailureThreshold == 0 {
		s.Resilience.CircuitBreaker.FailureThreshold = 5
	}
	if s.Resilience.CircuitBreaker.ResetTimeout == 0 {
		s.Resilience.CircuitBreaker.ResetTimeout = 60 * time.Second
	}
	if s.Resilience.Retry.MaxAttempts == 0 {
		s.Resilience.Retry.MaxAttempts = 3
	}
	if s.Resilience.Retry.InitialBackoff == 0 {
		s.Resilience.Retry.InitialBackoff = 100 * time.Millisecond
	}
	if s.Resilience.Retry.MaxBackoff == 0 {
		s.Resilience.Retry.MaxBackoff = 10 * time.Second
	}
	if s.Resilience.Retry.BackoffFactor == 0 {
		s.Resilience.Retry.BackoffFactor = 2.0
	}
	if s.Resilience.Retry.Jitter == 0 {
		s.Resilience.Retry.Jitter = 0.1
	}
	if s.Resilience.RateLimit.Rate == 0 {
		s.Resilience.RateLimit.Rate = 10.0
	}
	if s.Resilience.RateLimit.Burst == 0 {
		s.Resilience.RateLimit.Burst = 20
	}
	if s.Resilience.Bulkhead.MaxConcurrent == 0 {
		s.Resilience.Bulkhead.MaxConcurrent = 10
	}
}

// Validate validates all settings. Call ApplyDefaults first.
func (s *Settings) Validate() error {
	v := validation.New()
	v.Required("service.name", s.Service.Name)
	v.OneOf("service.environment", s.Service.Environment, []string{"development", "staging", "production"})
	v.Min("resilience.circuit_breaker.failure_threshold", s.Resilience.CircuitBreaker.FailureThreshold, 1)
	v.PositiveDuration("resilience.circuit_breaker.reset_timeout", s.Resilience.CircuitBreaker.ResetTimeout)
	v.Min("resilience.retry.max_attempts", s.Resilience.Retry.MaxAttempts, 1)
	v.PositiveDuration("resilience.retry.initial_backoff", s.Resilience.Retry.InitialBackoff)
	v.PositiveFloat("resilience.rate_limit.rate", s.Resilience.RateLimit.Rate)
	v.Min("resilience.rate_limit.burst", s.Resilience.RateLimit.Burst, 1)
	v.Min("resilience.bulkhead.max_concurrent", s.Resilience.Bulkhead.MaxConcurrent, 1)

	for name, bs := range s.Breakers {
		v.Required("breakers.<name>", name)
		if bs.FailureThreshold != 0 {
			v.Min("breakers."+name+".failure_threshold", bs.FailureThreshold, 1)
		}
		if bs.ResetTimeout != 0 {
			v.PositiveDuration("breakers."+name+".reset_timeout", bs.ResetTimeout)
		}
	}

	if err := s.Logging.Validate(); err != nil {
		return err
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// BreakerConfig resolves the effective circuit breaker config for a named
// breaker: the resilience defaults overlaid with any per-name override.
func (s *Settings) BreakerConfig(name string) resilience.CircuitBreakerConfig {
	base := s.Resilience.CircuitBreaker
	if override, ok := s.Breakers[name]; ok {
		if override.FailureThreshold > 0 {
			base.FailureThreshold = override.FailureThreshold
		}
		if override.ResetTimeout > 0 {
			base.ResetTimeout = override.ResetTimeout
		}
	}
	return base.CircuitBreakerConfig(name)
}
