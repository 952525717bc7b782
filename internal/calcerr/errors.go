// Package calcerr defines the error taxonomy shared by the ESG metric calculators.
//
// Two classes of failure exist. A ValidationError means the record being scored
// is malformed or out of range. A ConfigurationError means a lookup table the
// caller supplied is missing an expected entry. Both unwrap to a sentinel so
// callers can branch with errors.Is.
package calcerr

import (
	"errors"
	"fmt"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, compared with errors.Is().
var (
	// ErrValidation marks malformed or out-of-range calculator input.
	ErrValidation = constError("validation error")

	// ErrConfiguration marks a lookup table missing an expected key.
	ErrConfiguration = constError("configuration error")
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	// Field is the input field that failed validation (e.g., "scope").
	Field string
	// Value is the offending value, rendered for humans.
	Value string
	// Reason explains the constraint that was violated.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s=%q: %s", ErrValidation, e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConfigurationError describes a lookup table that cannot serve a request.
type ConfigurationError struct {
	// Table names the lookup structure (e.g., "gwp:ar6", "consequence").
	Table string
	// Key is the missing or inconsistent entry.
	Key string
	// Reason explains the problem.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: table %s: key %q: %s", ErrConfiguration, e.Table, e.Key, e.Reason)
}

// Unwrap returns ErrConfiguration.
func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// Invalid builds a ValidationError.
func Invalid(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// Invalidf builds a ValidationError for a numeric value.
func Invalidf(field string, value float64, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: fmt.Sprintf("%g", value), Reason: reason}
}

// Misconfigured builds a ConfigurationError.
func Misconfigured(table, key, reason string) *ConfigurationError {
	return &ConfigurationError{Table: table, Key: key, Reason: reason}
}

// IsValidation reports whether err is, or wraps, a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConfiguration reports whether err is, or wraps, a configuration failure.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
