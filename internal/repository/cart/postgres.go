package cart

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

func (r *postgresRepo) GetOrCreateByBuyer(ctx context.Context, buyerID string) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (buyer_id)
VALUES ($1)
ON CONFLICT (buyer_id) DO UPDATE SET buyer_id = EXCLUDED.buyer_id
RETURNING id::text, buyer_id::text, created_at
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, q, buyerID).Scan(&cart.ID, &cart.BuyerID, &cart.CreatedAt); err != nil {
		return nil, err
	}
	lines, err := r.fetchLines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Lines = lines
	return &cart, nil
}

func (r *postgresRepo) GetByBuyer(ctx context.Context, buyerID string) (*domain.Cart, error) {
	const q = `
SELECT id::text, buyer_id::text, created_at
FROM carts
WHERE buyer_id = $1
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, q, buyerID).Scan(&cart.ID, &cart.BuyerID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	lines, err := r.fetchLines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Lines = lines
	return &cart, nil
}

func (r *postgresRepo) AddLine(ctx context.Context, cartID, productID string, quantity int) error {
	const q = `
INSERT INTO cart_lines (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id) DO UPDATE
SET quantity = cart_lines.quantity + EXCLUDED.quantity
`
	_, err := r.pool.Exec(ctx, q, cartID, productID, quantity)
	return err
}

func (r *postgresRepo) ChangeLineQuantity(ctx context.Context, cartID, lineID string, quantity int) error {
	if quantity <= 0 {
		cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_lines
WHERE id = $1 AND cart_id = $2
`, lineID, cartID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	}

	cmd, err := r.pool.Exec(ctx, `
UPDATE cart_lines
SET quantity = $1
WHERE id = $2 AND cart_id = $3
`, quantity, lineID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, cartID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID)
	return err
}

func (r *postgresRepo) fetchLines(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	const q = `
SELECT id::text, cart_id::text, product_id::text, quantity, created_at
FROM cart_lines
WHERE cart_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ID, &line.CartID, &line.ProductID, &line.Quantity, &line.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
