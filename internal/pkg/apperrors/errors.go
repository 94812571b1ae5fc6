package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Account errors
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Profile errors
var (
	ErrProfileNotFound = errors.New("student profile not found")
)

// Scholarship errors
var (
	ErrScholarshipNotFound = errors.New("scholarship not found")
)

// ErrPersistenceFailure marks a storage operation that was rolled back.
var ErrPersistenceFailure = errors.New("persistence failure")

// Persistence wraps a failed storage operation so that it matches both
// ErrPersistenceFailure and the underlying cause.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistenceFailure, op, err)
}

// IsNotFound reports whether err is any of the not-found errors
func IsNotFound(err error) bool {
	for _, target := range []error{ErrResourceNotFound, ErrAccountNotFound, ErrProfileNotFound, ErrScholarshipNotFound} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
