package stats

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// Only orders in a counted status contribute. Pending and cancelled orders
// contribute zero by construction of the filter.
const countedStatuses = `('validated', 'shipped', 'delivered')`

func (r *postgresRepo) Totals(ctx context.Context, boutiqueID string, since time.Time) (int64, int64, int64, error) {
	const q = `
SELECT COUNT(DISTINCT o.id),
       COALESCE(SUM(l.quantity), 0),
       COALESCE(SUM(l.quantity * l.unit_price_cents), 0)
FROM orders o
JOIN order_lines l ON l.order_id = o.id
JOIN products p ON p.id = l.product_id
WHERE p.boutique_id = $1
  AND o.status IN ` + countedStatuses + `
  AND o.created_at >= $2
`
	var orders, units, revenue int64
	if err := r.pool.QueryRow(ctx, q, boutiqueID, since).Scan(&orders, &units, &revenue); err != nil {
		return 0, 0, 0, err
	}
	return orders, units, revenue, nil
}

func (r *postgresRepo) TopProducts(ctx context.Context, boutiqueID string, since time.Time, limit int) ([]domain.ProductSales, error) {
	// Ties broken by product id ascending so the ranking is deterministic.
	const q = `
SELECT l.product_id::text,
       p.name,
       SUM(l.quantity),
       SUM(l.quantity * l.unit_price_cents)
FROM orders o
JOIN order_lines l ON l.order_id = o.id
JOIN products p ON p.id = l.product_id
WHERE p.boutique_id = $1
  AND o.status IN ` + countedStatuses + `
  AND o.created_at >= $2
GROUP BY l.product_id, p.name
ORDER BY SUM(l.quantity) DESC, l.product_id ASC
LIMIT $3
`
	rows, err := r.pool.Query(ctx, q, boutiqueID, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProductSales
	for rows.Next() {
		var ps domain.ProductSales
		if err := rows.Scan(&ps.ProductID, &ps.ProductName, &ps.UnitsSold, &ps.RevenueCents); err != nil {
			return nil, err
		}
		result = append(result, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
