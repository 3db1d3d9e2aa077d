package boutique

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const boutiqueColumns = `id::text, seller_id::text, template_id::text, name, created_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateBoutiqueInput) (*domain.Boutique, error) {
	var b domain.Boutique
	err := r.pool.QueryRow(ctx, `
INSERT INTO boutiques (seller_id, template_id, name)
VALUES ($1, $2, $3)
RETURNING `+boutiqueColumns+`
`, in.SellerID, in.TemplateID, in.Name).Scan(&b.ID, &b.SellerID, &b.TemplateID, &b.Name, &b.CreatedAt)
	if err != nil {
		// The unique constraint on seller_id enforces one boutique per seller.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyOwnsBoutique
		}
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Boutique, error) {
	return r.fetch(ctx, `
SELECT `+boutiqueColumns+`
FROM boutiques
WHERE id = $1
`, id)
}

func (r *postgresRepo) GetBySeller(ctx context.Context, sellerID string) (*domain.Boutique, error) {
	return r.fetch(ctx, `
SELECT `+boutiqueColumns+`
FROM boutiques
WHERE seller_id = $1
`, sellerID)
}

func (r *postgresRepo) SetTemplate(ctx context.Context, boutiqueID, templateID string) (*domain.Boutique, error) {
	return r.fetch(ctx, `
UPDATE boutiques
SET template_id = $2
WHERE id = $1
RETURNING `+boutiqueColumns+`
`, boutiqueID, templateID)
}

func (r *postgresRepo) fetch(ctx context.Context, q string, args ...any) (*domain.Boutique, error) {
	var b domain.Boutique
	err := r.pool.QueryRow(ctx, q, args...).Scan(&b.ID, &b.SellerID, &b.TemplateID, &b.Name, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}
