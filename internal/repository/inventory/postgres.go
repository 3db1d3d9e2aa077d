package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

type postgresLedger struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresLedger{pool: pool, logger: logger}
}

const reserveSQL = `
UPDATE products
SET stock = stock - $2
WHERE id = $1 AND stock >= $2
`

const releaseSQL = `
UPDATE products
SET stock = stock + $2
WHERE id = $1
`

func (l *postgresLedger) Reserve(ctx context.Context, productID string, quantity int) error {
	cmd, err := l.pool.Exec(ctx, reserveSQL, productID, quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		l.logger.Info("stock reservation rejected",
			zap.String("product_id", productID),
			zap.Int("quantity", quantity))
		return &domain.InsufficientStockError{ProductID: productID, Requested: quantity}
	}
	l.logger.Debug("stock reserved",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity))
	return nil
}

func (l *postgresLedger) Release(ctx context.Context, productID string, quantity int) error {
	cmd, err := l.pool.Exec(ctx, releaseSQL, productID, quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	l.logger.Debug("stock released",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity))
	return nil
}

func (l *postgresLedger) Stock(ctx context.Context, productID string) (int, error) {
	var stock int
	err := l.pool.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return stock, nil
}

// ReserveTx runs the conditional decrement inside an existing transaction.
// Used by order checkout so all line reservations and the order insert commit
// or roll back together.
func ReserveTx(ctx context.Context, tx pgx.Tx, productID string, quantity int) error {
	cmd, err := tx.Exec(ctx, reserveSQL, productID, quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.InsufficientStockError{ProductID: productID, Requested: quantity}
	}
	return nil
}

// ReleaseTx runs the stock increment inside an existing transaction. Used by
// cancellation so the status flip and the restock commit together.
func ReleaseTx(ctx context.Context, tx pgx.Tx, productID string, quantity int) error {
	cmd, err := tx.Exec(ctx, releaseSQL, productID, quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
