// Package errors defines coded errors shared by the CLI, the TUI, and the
// HTTP server, so each surface can map a failure to its own presentation
// (exit codes, status lines, HTTP responses) from one machine-readable code.
//
// # Error Taxonomy
//
// Only a data-load failure is fatal to initialization. Malformed declarations
// are skipped during parsing, dangling edge references are excluded by the
// filter, and out-of-domain thresholds are clamped; none of these surface as
// errors, they just yield fewer visible elements.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDataLoad, "network source unavailable: %s", path)
//	if errors.Is(err, errors.ErrCodeDataLoad) {
//	    // Surface load failure state; show no partial graph
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable error identifier.
type Code string

// The full set of codes. HTTP status mapping lives in the server.
const (
	// ErrCodeDataLoad marks an unreadable or unavailable network source.
	// This is the only failure fatal to initialization.
	ErrCodeDataLoad Code = "DATA_LOAD"

	// ErrCodeInvalidThreshold marks thresholds outside their declared domain.
	// Callers recover by clamping; the code exists for diagnostics only.
	ErrCodeInvalidThreshold Code = "INVALID_THRESHOLD"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeNodeNotFound    Code = "NODE_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a code with a human-readable message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause to the stdlib errors helpers.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds a coded error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap annotates cause with a code and message while keeping it reachable
// through the unwrap chain.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether any error in err's chain carries code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain, or the empty
// string when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix for display. Non-coded errors pass
// through unchanged.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
