package template

import (
	"context"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context) ([]domain.Template, error)
}
