package order

import (
	"context"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

type CreateOrderInput struct {
	BuyerID string
	Lines   []CreateOrderLine
}

type CreateOrderLine struct {
	ProductID      string
	Quantity       int
	UnitPriceCents int64
}

// Repository persists orders. Create and Cancel are each a single atomic
// unit of work: stock movement and the order row commit or roll back together.
type Repository interface {
	// Create reserves stock for every line and persists the order in pending
	// state inside one transaction. Any line failing with insufficient stock
	// aborts the whole transaction; no partial order is ever durable.
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	// Cancel flips a pending order to cancelled and restores stock for all
	// its lines in one transaction. Returns ErrInvalidTransition when the
	// order is in any other state, ErrNotOwner on a buyer mismatch.
	Cancel(ctx context.Context, orderID, buyerID string) (*domain.Order, error)
	// AdvanceStatus moves the order forward along the lifecycle. It never
	// touches stock and rejects out-of-order transitions.
	AdvanceStatus(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error)
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
}
