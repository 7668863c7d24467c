package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies gateway errors for transport mapping
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found upstream
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates client input failed a local check
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeConflict indicates the upstream rejected a conflicting write
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeUnauthorized indicates a missing or role-mismatched session
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"

	// ErrorTypeInternal indicates a gateway-side failure
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeUpstream indicates the hospital API or object store failed
	ErrorTypeUpstream ErrorType = "UPSTREAM"

	// ErrorTypePartial indicates a multi-step workflow stopped between steps
	ErrorTypePartial ErrorType = "PARTIAL"
)

// AppError represents a classified gateway error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the wrapped cause
func (e *AppError) Unwrap() error {
	return e.Err
}

// TypeOf returns the classification of err, or ErrorTypeInternal for plain errors
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *AppError {
	return &AppError{Type: ErrorTypeConflict, Message: message}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Type: ErrorTypeUnauthorized, Message: message}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// NewUpstreamError creates a new upstream service error
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeUpstream, Message: message, Err: err}
}

// NewPartialError creates an error for a workflow that completed its first
// step but failed a later one, leaving upstream state split.
func NewPartialError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypePartial, Message: message, Err: err}
}
