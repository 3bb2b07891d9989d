// Package errors provides structured error types for forcegraph.
//
// Errors carry a machine-readable [Code] so the CLI and the HTTP frame server
// can react to a failure class without string matching:
//   - INVALID_*: rejected input (config, graph, topology, format)
//   - UNKNOWN_NODE: a node id that is not part of the engine
//   - RENDER_FAILED, INTERNAL_ERROR: unexpected failures
//
// The layout engine itself never returns errors from a step; codes only
// appear on construction, node lookup and the collaborators around it.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownNode, "node %d not found", id)
//	if errors.Is(err, errors.ErrCodeUnknownNode) {
//	    // 404
//	}
//
//	err = errors.Wrap(errors.ErrCodeRenderFailed, cause, "render %s", format)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidGraph    Code = "INVALID_GRAPH"
	ErrCodeInvalidTopology Code = "INVALID_TOPOLOGY"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	// Lookup errors
	ErrCodeUnknownNode Code = "UNKNOWN_NODE"

	// Internal errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
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
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from err, or "" if err carries none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix for *Error values
// and the plain error string otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error to the status code the frame server answers with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidConfig, ErrCodeInvalidGraph,
		ErrCodeInvalidTopology, ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case ErrCodeUnknownNode:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
