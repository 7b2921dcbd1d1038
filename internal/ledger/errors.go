package ledger

import (
	"errors"
	"fmt"
)

// Error kinds. Every error a ledger operation returns wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence error")
)

var (
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	ErrInvalidPrice    = fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	ErrInvalidName     = fmt.Errorf("%w: name is required", ErrValidation)
	ErrInvalidSection  = fmt.Errorf("%w: unknown section", ErrValidation)
	ErrInvalidPayment  = fmt.Errorf("%w: unknown payment method", ErrValidation)
	ErrInvalidPercent  = fmt.Errorf("%w: commission percent out of range", ErrValidation)
	ErrInvalidStock    = fmt.Errorf("%w: stock cannot be negative", ErrValidation)

	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrStaffNotFound   = fmt.Errorf("staff %w", ErrNotFound)
	ErrExpenseNotFound = fmt.Errorf("expense %w", ErrNotFound)

	ErrInsufficientStock = fmt.Errorf("%w: not enough stock", ErrConflict)
	ErrSectionMismatch   = fmt.Errorf("%w: staff does not work in section", ErrConflict)
	ErrNothingToPay      = fmt.Errorf("%w: no monthly commission to pay", ErrConflict)
)

// PersistenceError reports a failed snapshot save. The in-memory change it
// follows has already been applied.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPersistence, e.Err)
}

// Unwrap exposes both the kind and the driver error.
func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}
