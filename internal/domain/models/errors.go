package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected before any network call.
	ErrValidation = errors.New("validation failure")
	// ErrTransport marks unreachable backends and non-2xx replies.
	ErrTransport = errors.New("transport failure")
	// ErrDecode marks replies that are not the expected JSON shape.
	ErrDecode = errors.New("decode failure")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects field errors. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	msg := e.Fields[0].Message
	if len(e.Fields) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(e.Fields)-1)
	}
	return msg
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError builds a single-field validation error.
func NewValidationError(field, format string, a ...interface{}) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: fmt.Sprintf(format, a...)}}}
}
