// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import "errors"

// ErrValidationFailed is matched by every error returned from this package so
// callers can tell bad input apart from storage failures with errors.Is
var ErrValidationFailed = errors.New("validation failed")

// FieldError describes why a single form field was rejected
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	return e.Msg
}

func (e *FieldError) Is(target error) bool {
	return target == ErrValidationFailed
}

func fieldErr(field, msg string) *FieldError {
	return &FieldError{Field: field, Msg: msg}
}
