package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// For event-sourced entries this is the idempotency signal, not a failure.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidTenant indicates the caller supplied no organization context.
var ErrInvalidTenant = errors.New("organization context is required")

// ErrPeriodLocked indicates the accounting period no longer accepts changes.
var ErrPeriodLocked = errors.New("accounting period is locked")

// ErrConflict indicates the operation is not valid for the resource's current state.
var ErrConflict = errors.New("operation conflicts with current state")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not allowed")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
