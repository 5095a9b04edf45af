package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Bootstrap error codes, one per failure mode on the startup path.
const (
	// ErrCodeAllocation indicates a local port could not be reserved.
	ErrCodeAllocation ErrorCode = "PORT_ALLOCATION_FAILED"
	// ErrCodeNotFound indicates no backend executable could be located.
	ErrCodeNotFound ErrorCode = "BACKEND_NOT_FOUND"
	// ErrCodeIO indicates a directory or log file could not be created.
	ErrCodeIO ErrorCode = "IO_ERROR"
	// ErrCodeSpawn indicates the backend process could not be launched.
	ErrCodeSpawn ErrorCode = "SPAWN_FAILED"
	// ErrCodeReadinessTimeout indicates the backend launched but never
	// became healthy within the probe ceiling.
	ErrCodeReadinessTimeout ErrorCode = "READINESS_TIMEOUT"
	// ErrCodeInternal indicates an unexpected host-side failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeAllocation:       true,
	ErrCodeReadinessTimeout: true,
	ErrCodeNotFound:         false,
	ErrCodeIO:               false,
	ErrCodeSpawn:            false,
	ErrCodeInternal:         false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
