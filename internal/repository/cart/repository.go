package cart

import (
	"context"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

type Repository interface {
	// GetOrCreateByBuyer returns the buyer's open cart, creating it if absent.
	GetOrCreateByBuyer(ctx context.Context, buyerID string) (*domain.Cart, error)
	GetByBuyer(ctx context.Context, buyerID string) (*domain.Cart, error)
	AddLine(ctx context.Context, cartID, productID string, quantity int) error
	ChangeLineQuantity(ctx context.Context, cartID, lineID string, quantity int) error
	Clear(ctx context.Context, cartID string) error
}
