// Package errors provides the error taxonomy for top-cmds.
//
// Almost every condition the pipeline can hit is recoverable: the stage that
// detects it logs a message and degrades to an empty or default value. The
// sentinels below let callers tell those conditions apart with errors.Is.
//
// # Error Types
//
// Base errors (sentinel errors):
//   - ErrUndetermined - the owning shell could not be found
//   - ErrUnknownShell - the shell is not one we know how to read
//   - ErrUnavailable - a history file is missing or unreadable
//   - ErrInvalid - a value failed validation (config, limit)
//   - ErrInsufficientData - nothing to rank
//   - ErrIO - file I/O error
//
// Wrapped error types (add context):
//   - DetectionError{PID, Err} - process introspection failures
//   - HistoryError{Path, Err} - history file failures
//   - ConfigError{Path, Err} - configuration errors
//   - UsageError{Msg} - bad command-line usage, the only fatal condition
//
// # Usage
//
//	return &errors.HistoryError{Path: path, Err: errors.ErrUnavailable}
//
//	if errors.IsUnavailable(err) {
//	    // warn and carry on with an empty history
//	}
package errors

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	// ErrUndetermined indicates the parent-process walk found no shell.
	ErrUndetermined = baseError("shell undetermined")

	// ErrUnknownShell indicates the shell has no known history format.
	ErrUnknownShell = baseError("unknown shell")

	// ErrUnavailable indicates a history file could not be opened.
	ErrUnavailable = baseError("history unavailable")

	// ErrInvalid indicates validation failed.
	ErrInvalid = baseError("invalid")

	// ErrInsufficientData indicates the ranking came out empty.
	ErrInsufficientData = baseError("insufficient data")

	// ErrIO indicates a file I/O error.
	ErrIO = baseError("I/O error")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// DetectionError represents a failure while inspecting a process.
type DetectionError struct {
	// PID is the process being inspected when the walk stopped (optional).
	PID int32
	// Err is the underlying error.
	Err error
}

func (e *DetectionError) Error() string {
	if e.PID > 0 {
		return fmt.Sprintf("detect shell at pid %d: %s", e.PID, e.Err)
	}
	return fmt.Sprintf("detect shell: %s", e.Err)
}

func (e *DetectionError) Unwrap() error { return e.Err }

// HistoryError represents an error reading a history file.
type HistoryError struct {
	// Path is the history file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *HistoryError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("history %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("history: %s", e.Err)
}

func (e *HistoryError) Unwrap() error { return e.Err }

// ConfigError represents an error related to configuration.
type ConfigError struct {
	// Path is the configuration file path or "$VAR" for an environment
	// override (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// UsageError reports invalid command-line usage.
type UsageError struct {
	Msg string
	Err error
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *UsageError) Unwrap() error { return e.Err }

// Usage returns a *UsageError with a formatted message.
func Usage(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// Wrap adds context to an error by wrapping it with an operation name.
// The returned error implements Unwrap() allowing errors.Is and errors.As
// to work with the wrapped error.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{op: op, err: err}
}

// wrappedError is an error with an operation context.
type wrappedError struct {
	op  string
	err error
}

func (e *wrappedError) Error() string { return fmt.Sprintf("%s: %s", e.op, e.err) }
func (e *wrappedError) Unwrap() error { return e.err }

// IsUndetermined reports whether err is or wraps ErrUndetermined.
func IsUndetermined(err error) bool {
	return errors.Is(err, ErrUndetermined)
}

// IsUnknownShell reports whether err is or wraps ErrUnknownShell.
func IsUnknownShell(err error) bool {
	return errors.Is(err, ErrUnknownShell)
}

// IsUnavailable reports whether err is or wraps ErrUnavailable.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsInvalid reports whether err is or wraps ErrInvalid.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// IsInsufficientData reports whether err is or wraps ErrInsufficientData.
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

// IsIO reports whether err is or wraps ErrIO.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsUsage reports whether err is or wraps a *UsageError.
func IsUsage(err error) bool {
	_, ok := AsUsageError(err)
	return ok
}

// AsUsageError reports whether err can be typed as a *UsageError.
func AsUsageError(err error) (*UsageError, bool) {
	var ue *UsageError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// AsConfigError reports whether err can be typed as a *ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// AsHistoryError reports whether err can be typed as a *HistoryError.
func AsHistoryError(err error) (*HistoryError, bool) {
	var he *HistoryError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
