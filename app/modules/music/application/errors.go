package musicservice

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is matched by every ConflictError.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidArgument is matched by every ValidationError.
	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError reports a uniqueness rule rejection.
type ConflictError struct {
	Entity string
	Detail string
}

func (e *ConflictError) Error() string {
	if e.Detail == "" {
		return ErrConflict.Error()
	}
	return e.Detail
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ValidationError reports an input the service refuses before touching storage.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func notFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
