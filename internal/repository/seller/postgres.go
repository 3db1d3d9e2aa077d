package seller

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Seller, error) {
	var s domain.Seller
	err := r.pool.QueryRow(ctx, `
SELECT id::text, name, grade_rank, created_at
FROM sellers
WHERE id = $1
`, id).Scan(&s.ID, &s.Name, &s.GradeRank, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
