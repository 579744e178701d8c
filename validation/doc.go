// Package validation provides input validation for circuitkit configuration.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// recommended for settings structs loaded from files or the environment.
//
// # Struct Tag Validation
//
//	type BreakerSpec struct {
//	    Name      string `validate:"required"`
//	    Threshold int    `validate:"min=1"`
//	}
//	err := validation.Validate(spec)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Min("failure_threshold", threshold, 1)
//	v.PositiveDuration("reset_timeout", timeout)
//	err := v.Validate()
package validation
