package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrSessionExpired     = errors.New("session expired")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Student errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrDuplicateEmail     = errors.New("email already exists for another student")
	ErrDuplicateIDNumber  = errors.New("id number already exists for another student")
	ErrDuplicateStudentNo = errors.New("student number already exists")
	ErrStudentNoImmutable = errors.New("student number cannot be changed")
)

// Admin errors
var (
	ErrAdminNotFound    = errors.New("admin not found")
	ErrAdminEmailExists = errors.New("email already registered")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewMissingFieldsError creates a validation error listing the missing required fields
func NewMissingFieldsError(fields []string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: fmt.Sprintf("%s required", strings.Join(fields, ", ")),
		Details: map[string]interface{}{"fields": fields},
	}
}
