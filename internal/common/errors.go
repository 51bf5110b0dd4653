// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Row store errors.
	ErrValidation = errors.New("validation failed")
	ErrReference  = errors.New("no such sheet or row")

	// Session errors.
	ErrNoActiveSheet = errors.New("no active sheet")
	ErrNotEditing    = errors.New("no row is being edited")
	ErrStaleIngest   = errors.New("dataset read superseded by a newer change")

	// Dataset errors.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports a required field that was empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ReferenceError reports an operation addressed to a sheet or row position
// that does not exist. Position is -1 when only the sheet was addressed.
type ReferenceError struct {
	Sheet    string
	Position int
}

func (e *ReferenceError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("sheet %q does not exist", e.Sheet)
	}
	return fmt.Sprintf("sheet %q has no row at position %d", e.Sheet, e.Position)
}

func (e *ReferenceError) Unwrap() error {
	return ErrReference
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
