package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
	"github.com/zakaria-baami/marketplace-backend-sub001/internal/repository/inventory"
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

func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Reserve every line first. A failed conditional decrement aborts the
	// transaction, which also undoes the reservations made for earlier lines.
	var total int64
	for _, line := range in.Lines {
		if err := inventory.ReserveTx(ctx, tx, line.ProductID, line.Quantity); err != nil {
			return nil, err
		}
		total += line.UnitPriceCents * int64(line.Quantity)
	}

	var order domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (buyer_id, status, total_cents)
VALUES ($1, 'pending', $2)
RETURNING id::text, buyer_id::text, status, total_cents, created_at
`, in.BuyerID, total).Scan(&order.ID, &order.BuyerID, &order.Status, &order.TotalCents, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	for _, line := range in.Lines {
		var ol domain.OrderLine
		err := tx.QueryRow(ctx, `
INSERT INTO order_lines (order_id, product_id, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4)
RETURNING id::text, order_id::text, product_id::text, quantity, unit_price_cents
`, order.ID, line.ProductID, line.Quantity, line.UnitPriceCents).Scan(
			&ol.ID, &ol.OrderID, &ol.ProductID, &ol.Quantity, &ol.UnitPriceCents)
		if err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, ol)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("buyer_id", order.BuyerID),
		zap.Int64("total_cents", order.TotalCents),
		zap.Int("lines", len(order.Lines)))
	return &order, nil
}

func (r *postgresRepo) Cancel(ctx context.Context, orderID, buyerID string) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var owner string
	var status domain.OrderStatus
	err = tx.QueryRow(ctx, `
SELECT buyer_id::text, status
FROM orders
WHERE id = $1
FOR UPDATE
`, orderID).Scan(&owner, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if owner != buyerID {
		return nil, domain.ErrNotOwner
	}
	if !status.Cancellable() {
		return nil, domain.ErrInvalidTransition
	}

	if _, err := tx.Exec(ctx, `
UPDATE orders SET status = 'cancelled' WHERE id = $1
`, orderID); err != nil {
		return nil, err
	}

	// Restore stock for all lines in the same transaction as the status
	// flip, so a crash cannot leave one without the other. Quantities are
	// summed per product first; UPDATE ... FROM applies at most one joined
	// row per target, which would under-restore duplicate product lines.
	if _, err := tx.Exec(ctx, `
UPDATE products p
SET stock = p.stock + l.restock
FROM (
    SELECT product_id, SUM(quantity) AS restock
    FROM order_lines
    WHERE order_id = $1
    GROUP BY product_id
) l
WHERE l.product_id = p.id
`, orderID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Info("order cancelled",
		zap.String("order_id", orderID),
		zap.String("buyer_id", buyerID))
	return r.GetByID(ctx, orderID)
}

func (r *postgresRepo) AdvanceStatus(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status domain.OrderStatus
	err = tx.QueryRow(ctx, `
SELECT status FROM orders WHERE id = $1 FOR UPDATE
`, orderID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if next == domain.OrderCancelled || !status.CanTransition(next) {
		return nil, domain.ErrInvalidTransition
	}

	if _, err := tx.Exec(ctx, `
UPDATE orders SET status = $2 WHERE id = $1
`, orderID, next); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Info("order status advanced",
		zap.String("order_id", orderID),
		zap.String("from", string(status)),
		zap.String("to", string(next)))
	return r.GetByID(ctx, orderID)
}

func (r *postgresRepo) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := r.pool.QueryRow(ctx, `
SELECT id::text, buyer_id::text, status, total_cents, created_at
FROM orders
WHERE id = $1
`, orderID).Scan(&order.ID, &order.BuyerID, &order.Status, &order.TotalCents, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, order_id::text, product_id::text, quantity, unit_price_cents
FROM order_lines
WHERE order_id = $1
ORDER BY id ASC
`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.UnitPriceCents); err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *postgresRepo) ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, buyer_id::text, status, total_cents, created_at
FROM orders
WHERE buyer_id = $1
ORDER BY created_at DESC
`, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.Status, &o.TotalCents, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
