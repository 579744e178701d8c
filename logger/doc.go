// Package logger provides structured logging for circuitkit components
// using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("breaker")
//	log.Info("state changed", logger.Fields("breaker", "payments", "to", "open"))
package logger
