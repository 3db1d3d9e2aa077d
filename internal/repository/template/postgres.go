package template

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

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	var t domain.Template
	err := r.pool.QueryRow(ctx, `
SELECT id::text, name, required_rank
FROM templates
WHERE id = $1
`, id).Scan(&t.ID, &t.Name, &t.RequiredRank)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Template, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, name, required_rank
FROM templates
ORDER BY required_rank ASC, name ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Template
	for rows.Next() {
		var t domain.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.RequiredRank); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
