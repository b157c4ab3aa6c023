// Package errors provides the coded errors guidedrag returns at its
// boundaries.
//
// The alignment engine itself has no fallible I/O: candidate generation and
// snap resolution are pure, and misuse of a drag session (moving while
// idle, reentrant events) yields a no-op result, never an error. Codes
// cover what sits around the engine:
//
//   - Drag sessions: INVALID_DRAG_SET for unknown or empty node IDs and
//     INVALID_GEOMETRY for a dragged node with NaN/Inf or negative bounds
//   - Scenes, scripts and config files: INVALID_SCENE, INVALID_FORMAT,
//     INVALID_CONFIG, INVALID_PATH and FILE_NOT_FOUND
//   - Models and the HTTP API: NODE_NOT_FOUND, SCENE_NOT_FOUND and
//     INVALID_INPUT for malformed request bodies
//
// The HTTP server answers INVALID_* with 400, the not-found codes with
// 404 (see [IsNotFound]), SCENE_LIMIT with 429 and anything else,
// including uncoded errors reported as INTERNAL_ERROR, with 500.
//
// # Usage
//
//	_, err := ctl.Start([]string{"ghost"}, "")
//	if errors.Is(err, errors.ErrCodeInvalidDragSet) {
//	    // The scene has no node "ghost"; the controller stayed idle.
//	}
//
//	// Keep the decoder error as the cause.
//	err = errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes.
const (
	// Invalid input, answered with 400 over HTTP.
	ErrCodeInvalidInput    Code = "INVALID_INPUT"    // malformed request body or script event
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"   // tolerance, search distance, width or colors out of range
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY" // dragged node with non-finite or negative bounds
	ErrCodeInvalidScene    Code = "INVALID_SCENE"    // duplicate IDs, unknown groups or group cycles
	ErrCodeInvalidDragSet  Code = "INVALID_DRAG_SET" // empty or unknown node IDs, primary outside the set
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"   // undecodable JSON/TOML or unknown file extension
	ErrCodeInvalidPath     Code = "INVALID_PATH"     // empty or NUL-containing path

	// Missing resources, answered with 404.
	ErrCodeNodeNotFound  Code = "NODE_NOT_FOUND"
	ErrCodeSceneNotFound Code = "SCENE_NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// ErrCodeSceneLimit means the server holds its maximum number of scenes,
	// answered with 429.
	ErrCodeSceneLimit Code = "SCENE_LIMIT"

	// ErrCodeInternal labels uncoded errors in API responses.
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

// UserMessage returns the message shown to CLI users and API clients:
// the message of the outermost *Error without its code prefix or cause,
// or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsNotFound reports whether err carries one of the not-found codes:
// a node missing from a model, a scene missing from the server or a scene,
// script or config file missing on disk.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNodeNotFound, ErrCodeSceneNotFound, ErrCodeFileNotFound:
		return true
	}
	return false
}
