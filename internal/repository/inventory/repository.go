package inventory

import "context"

// Ledger owns per-product stock. Reserve is an atomic check-and-decrement:
// no caller can observe a stale stock value between the check and the write.
type Ledger interface {
	Reserve(ctx context.Context, productID string, quantity int) error
	Release(ctx context.Context, productID string, quantity int) error
	Stock(ctx context.Context, productID string) (int, error)
}
