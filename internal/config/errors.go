package config

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed configuration value.
// Field is a dotted path into the literal, e.g. "themeConfig.navbar.items[1].href".
type ValidationError struct {
	Field  string
	Reason string
	// Source names where the value came from when it was not the literal itself,
	// e.g. "env DOCSITE_URL".
	Source string
}

func (e *ValidationError) Error() string {
	msg := e.Reason
	if e.Field != "" {
		msg = fmt.Sprintf("field '%s': %s", e.Field, e.Reason)
	}
	if e.Source != "" {
		msg += " (from " + e.Source + ")"
	}
	return "invalid configuration: " + msg
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func missing(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}

// AsValidationError extracts a ValidationError from err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
