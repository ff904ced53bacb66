package store

import (
	"errors"
	"fmt"
)

// Common storage errors.
var (
	// ErrNotConnected is returned when the DB setting holds no handle.
	ErrNotConnected = errors.New("storage not connected")

	// ErrInvalidSettings is returned when the STORAGE setting cannot be
	// turned into connection parameters.
	ErrInvalidSettings = errors.New("invalid storage settings")

	// ErrUnreachable is returned when the backend refuses or drops the
	// connection.
	ErrUnreachable = errors.New("storage unreachable")

	// ErrAuthFailed is returned when the backend rejects the credentials.
	ErrAuthFailed = fmt.Errorf("%w: authentication failed", ErrUnreachable)

	// ErrUnknownDatabase is returned when the configured database does not exist.
	ErrUnknownDatabase = fmt.Errorf("%w: unknown database", ErrUnreachable)
)

// IsUnreachable checks if the error is any kind of connection failure.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// StoreError is a custom error type for storage errors with additional context.
type StoreError struct {
	Operation string // The operation that failed (e.g., "connect", "ping")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("storage %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("storage %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given operation, message, and wrapped error.
func NewStoreError(operation, message string, err error) *StoreError {
	return &StoreError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
