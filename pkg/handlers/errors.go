package handlers

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is against the typed errors below.
var (
	// ErrValidation indicates a command was rejected by its validator.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates no record matches the requested identity.
	ErrNotFound = errors.New("entity not found")

	// ErrPaginationOutOfBounds indicates a non-zero page with no content.
	ErrPaginationOutOfBounds = errors.New("requested page is out of bounds")
)

// ValidationError reports an invalid command attribute.
type ValidationError struct {
	Attribute string
	Message   string
}

// NewValidationError creates a ValidationError for attribute.
func NewValidationError(attribute, message string) *ValidationError {
	return &ValidationError{Attribute: attribute, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Attribute == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Attribute, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError reports that no record matches ID.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	entity := e.Entity
	if entity == "" {
		entity = "entity"
	}
	return fmt.Sprintf("%s not found with id %d", entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// PaginationOutOfBoundsError reports that Page lies beyond the available records.
type PaginationOutOfBoundsError struct {
	Page int
}

func (e *PaginationOutOfBoundsError) Error() string {
	return fmt.Sprintf("requested page is out of bounds: no data found for page %d", e.Page)
}

func (e *PaginationOutOfBoundsError) Unwrap() error {
	return ErrPaginationOutOfBounds
}
