package order

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/broker"
	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
	"github.com/zakaria-baami/marketplace-backend-sub001/internal/observability"
	orderrepo "github.com/zakaria-baami/marketplace-backend-sub001/internal/repository/order"
)

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	Cancel(ctx context.Context, orderID, buyerID string) (*domain.Order, error)
	AdvanceStatus(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error)
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
}

type cartCleaner interface {
	Clear(ctx context.Context, buyerID string) error
}

// Service drives the order lifecycle. Stock movement is delegated to the
// repository, which makes checkout and cancellation each one atomic unit.
type Service struct {
	repo      orderRepo
	carts     cartCleaner
	publisher broker.Publisher
	logger    *zap.Logger
}

func New(repo orderRepo, carts cartCleaner, publisher broker.Publisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = broker.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, carts: carts, publisher: publisher, logger: logger}
}

// Checkout turns a priced cart into a pending order, reserving stock for
// every line. All lines reserve or none do; a partial order is never durable.
func (s *Service) Checkout(ctx context.Context, buyerID string, cart domain.PricedCart) (*domain.Order, error) {
	ctx, span := observability.StartSpan(ctx, "order.Checkout")
	defer span.End()
	start := time.Now()
	defer func() {
		observability.CheckoutLatency.Observe(time.Since(start).Seconds())
	}()

	if len(cart.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	in := orderrepo.CreateOrderInput{BuyerID: buyerID}
	for _, line := range cart.Lines {
		in.Lines = append(in.Lines, orderrepo.CreateOrderLine{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
		})
	}

	order, err := s.repo.Create(ctx, in)
	if err != nil {
		if domain.IsInsufficientStock(err) {
			observability.OrdersFailedTotal.WithLabelValues("insufficient_stock").Inc()
			observability.StockReservationsFailed.WithLabelValues("insufficient_stock").Inc()
		} else {
			observability.OrdersFailedTotal.WithLabelValues("storage_error").Inc()
		}
		return nil, err
	}

	observability.OrdersCreatedTotal.Inc()
	if err := s.publisher.PublishOrderEvent(ctx, broker.EventTypeOrderCreated, order); err != nil {
		s.logger.Error("publish order created event failed",
			zap.String("order_id", order.ID), zap.Error(err))
	}
	if s.carts != nil {
		if err := s.carts.Clear(ctx, buyerID); err != nil {
			s.logger.Warn("clear cart after checkout failed",
				zap.String("buyer_id", buyerID), zap.Error(err))
		}
	}
	return order, nil
}

// Cancel flips a pending order to cancelled and restores its stock. Both
// happen in one transaction inside the repository; the release runs exactly
// once because any later cancel attempt fails the status check.
func (s *Service) Cancel(ctx context.Context, buyerID, orderID string) (*domain.Order, error) {
	ctx, span := observability.StartSpan(ctx, "order.Cancel")
	defer span.End()

	order, err := s.repo.Cancel(ctx, orderID, buyerID)
	if err != nil {
		return nil, err
	}

	observability.OrdersCancelledTotal.Inc()
	if err := s.publisher.PublishOrderEvent(ctx, broker.EventTypeOrderCancelled, order); err != nil {
		s.logger.Error("publish order cancelled event failed",
			zap.String("order_id", order.ID), zap.Error(err))
	}
	return order, nil
}

// Advance moves an order forward along the lifecycle on behalf of the
// fulfillment collaborator. Forward transitions never touch stock.
func (s *Service) Advance(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	ctx, span := observability.StartSpan(ctx, "order.Advance")
	defer span.End()

	if !next.Valid() {
		return nil, domain.ErrInvalidTransition
	}
	order, err := s.repo.AdvanceStatus(ctx, orderID, next)
	if err != nil {
		return nil, err
	}
	if err := s.publisher.PublishOrderEvent(ctx, broker.EventTypeOrderStatusChanged, order); err != nil {
		s.logger.Error("publish order status event failed",
			zap.String("order_id", order.ID), zap.Error(err))
	}
	return order, nil
}

// Get returns the buyer's order with its lines. A mismatch between caller
// and owner yields ErrNotOwner, which handlers render as not found.
func (s *Service) Get(ctx context.Context, buyerID, orderID string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, domain.ErrNotOwner
	}
	return order, nil
}

func (s *Service) ListMine(ctx context.Context, buyerID string) ([]domain.Order, error) {
	orders, err := s.repo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}
