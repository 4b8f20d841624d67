package billing

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBill is returned when saving a draft that has no lines
	ErrEmptyBill = errors.New("billing: bill has no items")
	// ErrInvalidQuantity is returned for a non-positive line quantity. The
	// draft returned alongside it is unchanged, so callers that prefer to
	// silently ignore bad quantities can drop the error.
	ErrInvalidQuantity = errors.New("billing: quantity must be at least 1")
	// ErrInvalidRate is returned for a tax percentage outside 0..100
	ErrInvalidRate = errors.New("billing: tax rate must be between 0 and 100")
)

// PersistenceError reports a failed bill store operation
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("billing: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
