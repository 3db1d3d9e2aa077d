package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/broker"
	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
	orderrepo "github.com/zakaria-baami/marketplace-backend-sub001/internal/repository/order"
)

type stubOrderRepo struct {
	created      *domain.Order
	createErr    error
	lastCreate   orderrepo.CreateOrderInput
	cancelled    *domain.Order
	cancelErr    error
	advanced     *domain.Order
	advanceErr   error
	lastAdvance  domain.OrderStatus
	byID         *domain.Order
	byIDErr      error
	listOrders   []domain.Order
	listErr      error
	createCalled int
}

func (s *stubOrderRepo) Create(_ context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error) {
	s.createCalled++
	s.lastCreate = in
	return s.created, s.createErr
}

func (s *stubOrderRepo) Cancel(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.cancelled, s.cancelErr
}

func (s *stubOrderRepo) AdvanceStatus(_ context.Context, _ string, next domain.OrderStatus) (*domain.Order, error) {
	s.lastAdvance = next
	return s.advanced, s.advanceErr
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	return s.byID, s.byIDErr
}

func (s *stubOrderRepo) ListByBuyer(_ context.Context, _ string) ([]domain.Order, error) {
	return s.listOrders, s.listErr
}

type stubCleaner struct {
	cleared []string
	err     error
}

func (s *stubCleaner) Clear(_ context.Context, buyerID string) error {
	s.cleared = append(s.cleared, buyerID)
	return s.err
}

type recordingPublisher struct {
	events []string
	err    error
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, eventType string, _ *domain.Order) error {
	p.events = append(p.events, eventType)
	return p.err
}

func pricedCart(lines ...domain.PricedLine) domain.PricedCart {
	return domain.PricedCart{CartID: "c1", BuyerID: "buyer", Lines: lines}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := New(&stubOrderRepo{}, nil, nil, nil)
	_, err := svc.Checkout(context.Background(), "buyer", pricedCart())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCheckoutHappyPath(t *testing.T) {
	created := &domain.Order{ID: "o1", BuyerID: "buyer", Status: domain.OrderPending, TotalCents: 3000}
	repo := &stubOrderRepo{created: created}
	cleaner := &stubCleaner{}
	pub := &recordingPublisher{}
	svc := New(repo, cleaner, pub, nil)

	got, err := svc.Checkout(context.Background(), "buyer", pricedCart(
		domain.PricedLine{ProductID: "p1", Quantity: 2, UnitPriceCents: 1500},
	))
	assert.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, "buyer", repo.lastCreate.BuyerID)
	assert.Len(t, repo.lastCreate.Lines, 1)
	assert.Equal(t, int64(1500), repo.lastCreate.Lines[0].UnitPriceCents)
	assert.Equal(t, []string{broker.EventTypeOrderCreated}, pub.events)
	assert.Equal(t, []string{"buyer"}, cleaner.cleared)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	repo := &stubOrderRepo{createErr: &domain.InsufficientStockError{ProductID: "p2", Requested: 4}}
	cleaner := &stubCleaner{}
	svc := New(repo, cleaner, nil, nil)

	_, err := svc.Checkout(context.Background(), "buyer", pricedCart(
		domain.PricedLine{ProductID: "p1", Quantity: 1, UnitPriceCents: 100},
		domain.PricedLine{ProductID: "p2", Quantity: 4, UnitPriceCents: 200},
	))
	assert.True(t, domain.IsInsufficientStock(err))

	var ise *domain.InsufficientStockError
	assert.True(t, errors.As(err, &ise))
	assert.Equal(t, "p2", ise.ProductID)
	// Failed checkout must not empty the cart.
	assert.Empty(t, cleaner.cleared)
}

func TestCheckoutPublishFailureDoesNotFailOrder(t *testing.T) {
	created := &domain.Order{ID: "o1", BuyerID: "buyer", Status: domain.OrderPending}
	pub := &recordingPublisher{err: errors.New("kafka down")}
	svc := New(&stubOrderRepo{created: created}, &stubCleaner{}, pub, nil)

	got, err := svc.Checkout(context.Background(), "buyer", pricedCart(
		domain.PricedLine{ProductID: "p1", Quantity: 1, UnitPriceCents: 100},
	))
	assert.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCancelMapsRepoOutcomes(t *testing.T) {
	cancelled := &domain.Order{ID: "o1", Status: domain.OrderCancelled}
	pub := &recordingPublisher{}
	svc := New(&stubOrderRepo{cancelled: cancelled}, nil, pub, nil)

	got, err := svc.Cancel(context.Background(), "buyer", "o1")
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, got.Status)
	assert.Equal(t, []string{broker.EventTypeOrderCancelled}, pub.events)

	svc = New(&stubOrderRepo{cancelErr: domain.ErrInvalidTransition}, nil, nil, nil)
	_, err = svc.Cancel(context.Background(), "buyer", "o1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	svc = New(&stubOrderRepo{cancelErr: domain.ErrNotOwner}, nil, nil, nil)
	_, err = svc.Cancel(context.Background(), "other", "o1")
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

func TestAdvanceRejectsUnknownStatus(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := New(repo, nil, nil, nil)
	_, err := svc.Advance(context.Background(), "o1", domain.OrderStatus("teleported"))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Zero(t, repo.lastAdvance)
}

func TestAdvanceHappyPath(t *testing.T) {
	advanced := &domain.Order{ID: "o1", Status: domain.OrderValidated}
	repo := &stubOrderRepo{advanced: advanced}
	pub := &recordingPublisher{}
	svc := New(repo, nil, pub, nil)

	got, err := svc.Advance(context.Background(), "o1", domain.OrderValidated)
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderValidated, got.Status)
	assert.Equal(t, domain.OrderValidated, repo.lastAdvance)
	assert.Equal(t, []string{broker.EventTypeOrderStatusChanged}, pub.events)
}

func TestGetEnforcesOwnership(t *testing.T) {
	repo := &stubOrderRepo{byID: &domain.Order{ID: "o1", BuyerID: "buyer"}}
	svc := New(repo, nil, nil, nil)

	got, err := svc.Get(context.Background(), "buyer", "o1")
	assert.NoError(t, err)
	assert.Equal(t, "o1", got.ID)

	_, err = svc.Get(context.Background(), "intruder", "o1")
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

func TestListMineNeverNil(t *testing.T) {
	svc := New(&stubOrderRepo{}, nil, nil, nil)
	orders, err := svc.ListMine(context.Background(), "buyer")
	assert.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}
