package boutique

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
	"github.com/zakaria-baami/marketplace-backend-sub001/internal/migrate"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetAndSeed(ctx context.Context, t *testing.T, pool *pgxpool.Pool) (sellerID, templateID string) {
	t.Helper()
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `DELETE FROM order_lines; DELETE FROM orders; DELETE FROM cart_lines; DELETE FROM carts; DELETE FROM products; DELETE FROM boutiques; DELETE FROM templates; DELETE FROM sellers`); err != nil {
		t.Fatalf("reset tables: %v", err)
	}
	if err := pool.QueryRow(ctx, `INSERT INTO sellers (name, grade_rank) VALUES ('Seller', 1) RETURNING id::text`).Scan(&sellerID); err != nil {
		t.Fatalf("insert seller: %v", err)
	}
	if err := pool.QueryRow(ctx, `INSERT INTO templates (name, required_rank) VALUES ('basic', 0) RETURNING id::text`).Scan(&templateID); err != nil {
		t.Fatalf("insert template: %v", err)
	}
	return sellerID, templateID
}

func TestPostgres_CreateSecondBoutiqueRejected(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	sellerID, templateID := resetAndSeed(ctx, t, pool)
	repo := NewPostgres(pool)

	first, err := repo.Create(ctx, CreateBoutiqueInput{
		SellerID:   sellerID,
		TemplateID: templateID,
		Name:       "First Shop",
	})
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}

	// The unique constraint on seller_id must surface as the sentinel, not
	// as a raw pg error.
	_, err = repo.Create(ctx, CreateBoutiqueInput{
		SellerID:   sellerID,
		TemplateID: templateID,
		Name:       "Second Shop",
	})
	if !errors.Is(err, domain.ErrAlreadyOwnsBoutique) {
		t.Fatalf("expected ErrAlreadyOwnsBoutique, got %v", err)
	}

	// The first boutique is untouched.
	got, err := repo.GetBySeller(ctx, sellerID)
	if err != nil {
		t.Fatalf("GetBySeller: %v", err)
	}
	if got.ID != first.ID || got.Name != "First Shop" {
		t.Fatalf("boutique = %+v, want the first one", got)
	}
}

func TestPostgres_GetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	resetAndSeed(ctx, t, pool)
	repo := NewPostgres(pool)

	if _, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
