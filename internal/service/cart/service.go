package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

type cartRepo interface {
	GetOrCreateByBuyer(ctx context.Context, buyerID string) (*domain.Cart, error)
	GetByBuyer(ctx context.Context, buyerID string) (*domain.Cart, error)
	AddLine(ctx context.Context, cartID, productID string, quantity int) error
	ChangeLineQuantity(ctx context.Context, cartID, lineID string, quantity int) error
	Clear(ctx context.Context, cartID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

type Service struct {
	repo     cartRepo
	products productRepo
	logger   *zap.Logger
	now      func() time.Time
}

func New(repo cartRepo, products productRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, products: products, logger: logger, now: time.Now}
}

func (s *Service) Get(ctx context.Context, buyerID string) (*domain.Cart, error) {
	return s.repo.GetOrCreateByBuyer(ctx, buyerID)
}

func (s *Service) AddProduct(ctx context.Context, buyerID, productID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	cart, err := s.repo.GetOrCreateByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddLine(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByBuyer(ctx, buyerID)
}

func (s *Service) ChangeQuantity(ctx context.Context, buyerID, lineID string, quantity int) (*domain.Cart, error) {
	cart, err := s.repo.GetByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ChangeLineQuantity(ctx, cart.ID, lineID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByBuyer(ctx, buyerID)
}

// Snapshot converts the buyer's cart into an immutable priced quote. Prices
// are copied from the live products; lines whose requested quantity exceeds
// current stock are flagged unavailable rather than dropped. Neither the cart
// nor any product is mutated.
func (s *Service) Snapshot(ctx context.Context, buyerID string) (*domain.PricedCart, error) {
	cart, err := s.repo.GetByBuyer(ctx, buyerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	ids := make([]string, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	priced := &domain.PricedCart{
		CartID:  cart.ID,
		BuyerID: cart.BuyerID,
		TakenAt: s.now().UTC(),
	}
	for _, line := range cart.Lines {
		p, ok := byID[line.ProductID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		priced.Lines = append(priced.Lines, domain.PricedLine{
			ProductID:      p.ID,
			ProductName:    p.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: p.PriceCents,
			Unavailable:    line.Quantity > p.Stock,
		})
	}

	s.logger.Debug("cart snapshot taken",
		zap.String("cart_id", cart.ID),
		zap.String("buyer_id", buyerID),
		zap.Int("lines", len(priced.Lines)))
	return priced, nil
}

// Clear empties the buyer's cart. Called after a successful checkout.
func (s *Service) Clear(ctx context.Context, buyerID string) error {
	cart, err := s.repo.GetByBuyer(ctx, buyerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.repo.Clear(ctx, cart.ID)
}
