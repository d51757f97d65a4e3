package receipt

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no receipt exists for an ID.
	ErrNotFound = errors.New("receipt not found")

	// ErrDuplicateID is returned by a store when a receipt with the same
	// ID was already committed. Intake retries with a fresh ID.
	ErrDuplicateID = errors.New("receipt id already exists")
)

// ValidationError describes why a submitted payload was rejected.
// No partial receipt is ever persisted when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
