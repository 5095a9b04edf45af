package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// HostError is the unified error type for the desktop host.
type HostError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *HostError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *HostError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *HostError) WithCause(cause error) *HostError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *HostError) WithDetail(key string, value any) *HostError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new HostError with automatic retryable detection.
func New(code ErrorCode, message string) *HostError {
	return &HostError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// CodeOf extracts the error code from err, or ErrCodeInternal if err is not
// a HostError.
func CodeOf(err error) ErrorCode {
	var he *HostError
	if stderrors.As(err, &he) {
		return he.Code
	}
	return ErrCodeInternal
}

// --- Bootstrap Error Constructors ---

// AllocationFailed creates a HostError for a failed local port reservation.
func AllocationFailed(cause error) *HostError {
	return &HostError{
		Code: ErrCodeAllocation, Message: "Cannot reserve a local port for the backend.",
		Retryable: true, Cause: cause,
	}
}

// BackendNotFound creates a HostError for a backend executable that could not
// be located. It names the resource directory and the expected file name so
// packaging problems are diagnosable from the message alone.
func BackendNotFound(resourceDir, binaryName string) *HostError {
	return &HostError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("Embedded backend binary not found under %s. Expected file name: %s", resourceDir, binaryName),
		Details: map[string]any{"resource_dir": resourceDir, "binary_name": binaryName},
	}
}

// IO creates a HostError for a failed directory or file operation.
func IO(op, path string, cause error) *HostError {
	return &HostError{
		Code: ErrCodeIO, Message: fmt.Sprintf("Cannot %s %s.", op, path),
		Details: map[string]any{"op": op, "path": path}, Cause: cause,
	}
}

// SpawnFailed creates a HostError for a backend process that could not be
// launched.
func SpawnFailed(program string, cause error) *HostError {
	return &HostError{
		Code: ErrCodeSpawn, Message: fmt.Sprintf("Cannot spawn backend process (%s).", program),
		Details: map[string]any{"program": program}, Cause: cause,
	}
}

// ReadinessTimeout creates a HostError for a backend that launched but never
// became healthy.
func ReadinessTimeout(apiBase string, waited time.Duration) *HostError {
	return &HostError{
		Code:      ErrCodeReadinessTimeout,
		Message:   "Backend process started but /health did not become ready in time.",
		Retryable: true,
		Details:   map[string]any{"api_base": apiBase, "waited": waited.String()},
	}
}
