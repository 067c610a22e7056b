package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by StudyService. The API layer maps them to
// HTTP status codes.
var (
	// ErrDeckNotFound means no deck in the current catalog has the requested id.
	// API layer should map this to HTTP 404 Not Found.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrStaleSession means the session id does not name the active session
	// of the expected kind, e.g. the learner has since opened another deck.
	// API layer should map this to HTTP 409 Conflict.
	ErrStaleSession = errors.New("session is no longer active")
)

// StudyServiceError wraps unexpected failures from the controller's collaborators.
type StudyServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for StudyServiceError.
func (e *StudyServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("study service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("study service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StudyServiceError) Unwrap() error {
	return e.Err
}

// NewStudyServiceError creates a new StudyServiceError.
func NewStudyServiceError(operation, message string, err error) *StudyServiceError {
	return &StudyServiceError{Operation: operation, Message: message, Err: err}
}
