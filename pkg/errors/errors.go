// Package errors provides structured error types for bracketview.
//
// Every error the library surfaces to callers carries a machine-readable
// [Code] so the CLI can decide how to present it and tests can assert on the
// failure class rather than on message text.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - SHAPE_MISMATCH, INVALID_INDEX: bracket geometry errors
//   - INVALID_*: other input validation failures
//   - *_NOT_FOUND: missing resources
//   - INTERNAL_*: unexpected internal errors
//
// Geometry errors are programmer errors. They are surfaced immediately and
// never retried.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeShapeMismatch, "round %d has %d matches, want %d", r, got, want)
//	if errors.Is(err, errors.ErrCodeShapeMismatch) {
//	    // reject the bracket
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code classifies a failure. Callers switch on it instead of on message text.
type Code string

const (
	// Bracket geometry
	ErrCodeShapeMismatch Code = "SHAPE_MISMATCH"
	ErrCodeInvalidIndex  Code = "INVALID_INDEX"

	// Input
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle  Code = "INVALID_STYLE"
	ErrCodeInvalidMode   Code = "INVALID_MODE"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Lookup
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSectionNotFound Code = "SECTION_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded failure with an optional underlying cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error formats as "CODE: message" followed by ": cause" when wrapped.
func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is like [New] but keeps cause reachable through errors.Unwrap.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any coded error in err's chain has code. A
// SHAPE_MISMATCH wrapped as INVALID_FORMAT still matches both.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost coded error in err's chain, or
// "" when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost coded error without its
// code prefix, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsGeometry reports whether err is a shape or index error raised by
// bracket validation or the layout engine.
func IsGeometry(err error) bool {
	switch GetCode(err) {
	case ErrCodeShapeMismatch, ErrCodeInvalidIndex:
		return true
	}
	return false
}
