package services

import "errors"

var (
	// ErrNotFound covers entities that are absent or not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart is returned by checkout when the cart is missing or empty.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrOrderCreation replaces whatever failed inside the checkout
	// transaction; the real cause is logged, not surfaced.
	ErrOrderCreation = errors.New("failed to place order")
)

// InvalidStateError means the operation is not legal in the entity's
// current state (HTTP 400).
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string { return e.Reason }

// ValidationError carries the field→message-list map rendered as HTTP 422.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string { return "validation failed" }

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {msg}}}
}
