package broker

import (
	"time"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderCancelled     = "order.cancelled"
	EventTypeOrderStatusChanged = "order.status_changed"
)

type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

type OrderEvent struct {
	BaseEvent
	OrderID    string             `json:"order_id"`
	BuyerID    string             `json:"buyer_id"`
	Status     domain.OrderStatus `json:"status"`
	TotalCents int64              `json:"total_cents"`
	Lines      []OrderEventLine   `json:"lines,omitempty"`
}

type OrderEventLine struct {
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}
