package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

type stubCartRepo struct {
	cart          *domain.Cart
	getErr        error
	addLineErr    error
	changeErr     error
	clearErr      error
	lastAddCartID string
	lastAddProd   string
	lastAddQty    int
	clearedCartID string
}

func (s *stubCartRepo) GetOrCreateByBuyer(_ context.Context, _ string) (*domain.Cart, error) {
	return s.cart, s.getErr
}

func (s *stubCartRepo) GetByBuyer(_ context.Context, _ string) (*domain.Cart, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.cart, nil
}

func (s *stubCartRepo) AddLine(_ context.Context, cartID, productID string, quantity int) error {
	s.lastAddCartID = cartID
	s.lastAddProd = productID
	s.lastAddQty = quantity
	return s.addLineErr
}

func (s *stubCartRepo) ChangeLineQuantity(_ context.Context, _, _ string, _ int) error {
	return s.changeErr
}

func (s *stubCartRepo) Clear(_ context.Context, cartID string) error {
	s.clearedCartID = cartID
	return s.clearErr
}

type stubProductRepo struct {
	products map[string]domain.Product
	err      error
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *stubProductRepo) GetByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestService(repo *stubCartRepo, products *stubProductRepo) *Service {
	svc := New(repo, products, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestAddProductValidation(t *testing.T) {
	svc := newTestService(&stubCartRepo{}, &stubProductRepo{})
	_, err := svc.AddProduct(context.Background(), "buyer", "prod", 0)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected quantity error, got %v", err)
	}
}

func TestAddProductUnknownProduct(t *testing.T) {
	svc := newTestService(&stubCartRepo{}, &stubProductRepo{products: map[string]domain.Product{}})
	_, err := svc.AddProduct(context.Background(), "buyer", "missing", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddProductHappyPath(t *testing.T) {
	repo := &stubCartRepo{cart: &domain.Cart{ID: "c1", BuyerID: "buyer"}}
	products := &stubProductRepo{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Prod", PriceCents: 100, Stock: 5},
	}}
	svc := newTestService(repo, products)
	got, err := svc.AddProduct(context.Background(), "buyer", "p1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "c1" {
		t.Fatalf("unexpected cart %+v", got)
	}
	if repo.lastAddCartID != "c1" || repo.lastAddProd != "p1" || repo.lastAddQty != 2 {
		t.Fatalf("AddLine not called as expected")
	}
}

func TestSnapshotEmptyCart(t *testing.T) {
	svc := newTestService(&stubCartRepo{cart: &domain.Cart{ID: "c1", BuyerID: "buyer"}}, &stubProductRepo{})
	_, err := svc.Snapshot(context.Background(), "buyer")
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	svc = newTestService(&stubCartRepo{getErr: domain.ErrNotFound}, &stubProductRepo{})
	_, err = svc.Snapshot(context.Background(), "buyer")
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart for missing cart, got %v", err)
	}
}

func TestSnapshotCopiesPricesAndFlagsUnavailable(t *testing.T) {
	repo := &stubCartRepo{cart: &domain.Cart{
		ID:      "c1",
		BuyerID: "buyer",
		Lines: []domain.CartLine{
			{ID: "l1", CartID: "c1", ProductID: "p1", Quantity: 2},
			{ID: "l2", CartID: "c1", ProductID: "p2", Quantity: 10},
		},
	}}
	products := &stubProductRepo{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Plenty", PriceCents: 500, Stock: 5},
		"p2": {ID: "p2", Name: "Scarce", PriceCents: 300, Stock: 3},
	}}
	svc := newTestService(repo, products)

	priced, err := svc.Snapshot(context.Background(), "buyer")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(priced.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(priced.Lines))
	}
	if priced.Lines[0].UnitPriceCents != 500 || priced.Lines[0].Unavailable {
		t.Fatalf("unexpected first line %+v", priced.Lines[0])
	}
	if !priced.Lines[1].Unavailable {
		t.Fatalf("second line should be flagged unavailable, got %+v", priced.Lines[1])
	}
	if priced.Lines[1].UnitPriceCents != 300 {
		t.Fatalf("unavailable line still carries a price, got %+v", priced.Lines[1])
	}

	// Snapshot must not mutate cart or products.
	if repo.cart.Lines[1].Quantity != 10 {
		t.Fatalf("cart mutated by snapshot")
	}
	if products.products["p2"].Stock != 3 {
		t.Fatalf("product mutated by snapshot")
	}
}

func TestSnapshotMissingProduct(t *testing.T) {
	repo := &stubCartRepo{cart: &domain.Cart{
		ID:      "c1",
		BuyerID: "buyer",
		Lines:   []domain.CartLine{{ID: "l1", CartID: "c1", ProductID: "ghost", Quantity: 1}},
	}}
	svc := newTestService(repo, &stubProductRepo{products: map[string]domain.Product{}})
	_, err := svc.Snapshot(context.Background(), "buyer")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClearMissingCartIsNoop(t *testing.T) {
	svc := newTestService(&stubCartRepo{getErr: domain.ErrNotFound}, &stubProductRepo{})
	if err := svc.Clear(context.Background(), "buyer"); err != nil {
		t.Fatalf("Clear on missing cart: %v", err)
	}
}
