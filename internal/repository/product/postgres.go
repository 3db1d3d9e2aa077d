package product

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
	"github.com/zakaria-baami/marketplace-backend-sub001/internal/observability"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, boutique_id::text, name, category, price_cents, stock, created_at`

func (r *postgresRepo) ListByBoutique(ctx context.Context, boutiqueID string) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+productColumns+`
FROM products
WHERE boutique_id = $1
ORDER BY created_at DESC
`, boutiqueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows, r.logger)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, `
SELECT `+productColumns+`
FROM products
WHERE id = $1
`, id).Scan(&p.ID, &p.BoutiqueID, &p.Name, &p.Category, &p.PriceCents, &p.Stock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	checkIntegrity(r.logger, p)
	return &p, nil
}

func (r *postgresRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+productColumns+`
FROM products
WHERE id = ANY($1)
`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows, r.logger)
}

func (r *postgresRepo) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, `
INSERT INTO products (boutique_id, name, category, price_cents, stock)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+productColumns+`
`, in.BoutiqueID, in.Name, in.Category, in.PriceCents, in.Stock).Scan(
		&p.ID, &p.BoutiqueID, &p.Name, &p.Category, &p.PriceCents, &p.Stock, &p.CreatedAt)
	if err != nil {
		r.logger.Error("product repo: create failed",
			zap.String("boutique_id", in.BoutiqueID), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows, logger *zap.Logger) ([]domain.Product, error) {
	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.BoutiqueID, &p.Name, &p.Category, &p.PriceCents, &p.Stock, &p.CreatedAt); err != nil {
			return nil, err
		}
		checkIntegrity(logger, p)
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// checkIntegrity raises the data-integrity alarm on observed negative stock.
// The schema constraint makes this unreachable; it is never silently corrected.
func checkIntegrity(logger *zap.Logger, p domain.Product) {
	if p.Stock < 0 {
		logger.Error("data integrity alarm: negative stock",
			zap.String("product_id", p.ID), zap.Int("stock", p.Stock))
		observability.StockIntegrityAlarms.Inc()
	}
}
