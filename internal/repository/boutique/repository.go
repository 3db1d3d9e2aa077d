package boutique

import (
	"context"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

type CreateBoutiqueInput struct {
	SellerID   string
	TemplateID string
	Name       string
}

type Repository interface {
	Create(ctx context.Context, in CreateBoutiqueInput) (*domain.Boutique, error)
	GetByID(ctx context.Context, id string) (*domain.Boutique, error)
	GetBySeller(ctx context.Context, sellerID string) (*domain.Boutique, error)
	SetTemplate(ctx context.Context, boutiqueID, templateID string) (*domain.Boutique, error)
}
