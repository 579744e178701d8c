// Package config provides configuration loading and validation for circuitkit
// components.
//
// It uses Viper to load configuration from files and environment variables,
// supporting YAML files, .env files, and environment-specific overrides.
//
// # Usage
//
//	var settings config.Settings
//	err := config.LoadConfig("payments", &settings)
//
// Environment variables override file values using underscore-separated
// paths (e.g., RESILIENCE_CIRCUIT_BREAKER_FAILURE_THRESHOLD).
package config
