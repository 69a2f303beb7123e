package services

import (
	"errors"
	"fmt"

	"github.com/sjperalta/tuition-api/internal/statemachine"
)

// Common service errors
var (
	ErrNotFound           = errors.New("Record not found")
	ErrStudentNotFound    = notFound("Student not found")
	ErrTuitionNotFound    = notFound("Tuition not found for the given term")
	ErrDuplicateLedger    = errors.New("Tuition already exists for this student and term")
	ErrInvalidAmount      = statemachine.ErrInvalidAmount
	ErrValidation         = errors.New("validation failed")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrStorage            = errors.New("storage error")
	ErrInvalidCredentials = errors.New("Bad username or password")
	ErrInactiveUser       = errors.New("Account is inactive")
)

// notFoundError is a missing-record error that also matches ErrNotFound.
type notFoundError struct {
	message string
}

func notFound(message string) error {
	return &notFoundError{message: message}
}

func (e *notFoundError) Error() string {
	return e.message
}

func (e *notFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError describes bad client input. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func validationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// storageError wraps a persistence failure so callers can match ErrStorage
// while the cause stays available for logging.
func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// IsClientError reports whether err was caused by the request rather than
// the server.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrDuplicateLedger) ||
		errors.Is(err, ErrNotFound)
}
