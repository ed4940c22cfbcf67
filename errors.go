package sframe

import (
	"errors"
	"fmt"
)

// Sentinel errors for the adapter's failure taxonomy. Wrapped errors carry the
// failing operation and detail; match with errors.Is.
var (
	// ErrOutOfRange is returned for positional access past the end of a
	// vector, list, or column set.
	ErrOutOfRange = errors.New("index out of range")

	// ErrTypeMismatch is returned when a handle's host representation does
	// not match what the operation requires.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrLengthMismatch is returned when columns supplied to the builder do
	// not all have the same length.
	ErrLengthMismatch = errors.New("column length mismatch")

	// ErrReadOnly is returned when mutating metadata on a sealed handle.
	ErrReadOnly = errors.New("value is read-only")
)

func errOutOfRange(op string, index, length int) error {
	return fmt.Errorf("%s: %w: index %d, length %d", op, ErrOutOfRange, index, length)
}

func errTypeMismatch(op string, want, got Kind) error {
	return fmt.Errorf("%s: %w: want %s, got %s", op, ErrTypeMismatch, want, got)
}
