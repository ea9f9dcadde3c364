// Package errors provides the classified error type used at the boundaries of docsite.
//
// Configuration problems surface from internal/config as *config.ValidationError.
// Commands lift them into a ClassifiedError so the CLI adapter can pick an exit
// code and decide how much detail to print.
//
//	err := errors.ValidationError("configuration invalid").
//		WithContext("field", "i18n.defaultLocale").
//		WithCause(cause).
//		Build()
package errors
