package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned when an id is not in the store's id format.
	ErrInvalidID = errors.New("invalid id")

	// ErrValueTooLong is returned when a value exceeds its column's length.
	ErrValueTooLong = errors.New("value too long")
)

// DuplicateError reports a uniqueness conflict on a single field.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s is already taken", e.Field)
}
