package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation error")

	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when a user books a trip they offered themselves.
	ErrForbidden = errors.New("forbidden")

	ErrCapacityExceeded = errors.New("not enough seats available")

	// ErrPersistence means the catalog could not be written. Nothing the
	// failed operation did has been committed.
	ErrPersistence = errors.New("catalog could not be saved")

	// ErrCatalogUnavailable means the catalog could not be read. It is not
	// the same as an empty catalog.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// ValidationError names the offending field. errors.Is(err, ErrValidation)
// holds for every ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
