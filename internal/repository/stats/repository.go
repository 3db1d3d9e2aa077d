package stats

import (
	"context"
	"time"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

// Repository recomputes sales aggregates from the order ledger. Reads only;
// it never mutates orders or stock.
type Repository interface {
	Totals(ctx context.Context, boutiqueID string, since time.Time) (orders, units, revenueCents int64, err error)
	TopProducts(ctx context.Context, boutiqueID string, since time.Time, limit int) ([]domain.ProductSales, error)
}
