// Package apperr holds the error kinds shared by every service. The HTTP layer
// maps each kind to a status code; anything else is a store failure.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError is returned when a request is missing required content.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation checks if err is a validation error
func IsValidation(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// NotFoundError is returned when a reference does not resolve.
type NotFoundError struct {
	Resource string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// IsNotFound checks if err is a not-found error
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// UnauthorizedError is returned when the requester may not perform an action.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func IsUnauthorized(err error) bool {
	var ua *UnauthorizedError
	return errors.As(err, &ua)
}

// ConflictError is returned when a unique value is already taken.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
