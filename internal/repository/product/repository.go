package product

import (
	"context"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

type CreateProductInput struct {
	BoutiqueID string
	Name       string
	Category   string
	PriceCents int64
	Stock      int
}

type Repository interface {
	ListByBoutique(ctx context.Context, boutiqueID string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
}
