package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all key-value backends.
var (
	// ErrNotFound is returned by KV.Get when the key has never been written
	// or has been deleted.
	ErrNotFound = errors.New("key not found")

	// ErrWriteFailed is returned when a backend rejects a write.
	// Check the wrapped error for backend details.
	ErrWriteFailed = errors.New("write failed")

	// ErrReadFailed is returned when a backend cannot serve a read for a
	// reason other than a missing key.
	ErrReadFailed = errors.New("read failed")
)

// IsNotFoundError reports whether err means the key is absent.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Record    string // The logical record (e.g., "imported_decks")
	Operation string // The operation that failed (e.g., "read", "write")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Record,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Record, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given record, operation, message, and wrapped error.
func NewStoreError(record, operation, message string, err error) *StoreError {
	return &StoreError{
		Record:    record,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
