package models

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrDuplicateIdentity   = errors.New("employee already exists")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrDuplicateSubmission = errors.New("already submitted for this date")
	ErrUnauthorized        = errors.New("invalid admin secret")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)

// ValidationError describes one malformed or missing field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
