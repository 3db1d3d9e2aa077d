package domain

import "time"

// OrderStatus is the order lifecycle state. Transitions are monotonic along
// pending -> validated -> shipped -> delivered, with cancellation allowed only
// from pending. Cancelled and delivered are terminal.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderValidated OrderStatus = "validated"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known status value.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderValidated, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Cancellable reports whether an order in this status may be cancelled.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending
}

// CountsTowardSales reports whether order lines in this status contribute to
// seller statistics. Pending and cancelled orders contribute nothing.
func (s OrderStatus) CountsTowardSales() bool {
	switch s {
	case OrderValidated, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from s to next. Forward
// transitions never skip a state and never re-enter a terminal one.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderValidated || next == OrderCancelled
	case OrderValidated:
		return next == OrderShipped
	case OrderShipped:
		return next == OrderDelivered
	default:
		return false
	}
}

type Order struct {
	ID         string      `json:"id"`
	BuyerID    string      `json:"buyerId"`
	Status     OrderStatus `json:"status"`
	TotalCents int64       `json:"totalCents"`
	CreatedAt  time.Time   `json:"createdAt"`
	Lines      []OrderLine `json:"lines,omitempty"`
}

// OrderLine stores the unit price captured at order creation. It is never
// re-read from the live product.
type OrderLine struct {
	ID             string `json:"id"`
	OrderID        string `json:"orderId"`
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}
