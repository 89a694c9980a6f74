// Package errors provides structured error types for the Cardstock application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the layout libraries
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Geometry and layout errors mirror the failure modes of document
// construction:
//   - DEGENERATE_BOX: zero-area box where a non-zero extent is required
//   - UNKNOWN_SPACE: coordinate space not registered or missing its scale
//   - UNKNOWN_REGION: reference to a region that was never constructed
//   - OUT_OF_BOUNDS: a child region resolves outside its parent
//
// Configuration and asset errors use INVALID_* and *_NOT_FOUND codes.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownRegion, "no region named %q", name)
//	if errors.Is(err, errors.ErrCodeUnknownRegion) {
//	    // Handle missing region
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "load asset %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Geometry and layout errors
	ErrCodeDegenerateBox Code = "DEGENERATE_BOX"
	ErrCodeUnknownSpace  Code = "UNKNOWN_SPACE"
	ErrCodeUnknownRegion Code = "UNKNOWN_REGION"
	ErrCodeOutOfBounds   Code = "OUT_OF_BOUNDS"

	// Configuration errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPolicy Code = "INVALID_POLICY"
	ErrCodeInvalidAnchor Code = "INVALID_ANCHOR"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Asset errors
	ErrCodeUnsupportedPathCommand Code = "UNSUPPORTED_PATH_COMMAND"
	ErrCodeFileNotFound           Code = "FILE_NOT_FOUND"
	ErrCodeFontNotFound           Code = "FONT_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
