package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates a request that fails validation before any
	// repository call is made.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrNotOwner indicates the caller does not own the entity. Handlers map
	// it to the same response as ErrNotFound so ownership probing leaks
	// nothing beyond the not-found case.
	ErrNotOwner = errors.New("not owner")
	// ErrEmptyCart indicates a checkout was attempted on a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidTransition indicates an order status change not permitted by
	// the lifecycle state machine. No mutation occurs when it is returned.
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrAlreadyOwnsBoutique indicates the seller already has a boutique.
	ErrAlreadyOwnsBoutique = errors.New("seller already owns a boutique")
	// ErrGradeInsufficient indicates the seller grade does not satisfy the
	// template's required grade.
	ErrGradeInsufficient = errors.New("seller grade insufficient for template")
)

// InsufficientStockError reports which product could not cover the requested
// quantity, so callers can surface the offending line.
type InsufficientStockError struct {
	ProductID string
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested %d)", e.ProductID, e.Requested)
}

// IsInsufficientStock reports whether err wraps an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}
