package stats

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
	"github.com/zakaria-baami/marketplace-backend-sub001/internal/observability"
)

const defaultTopN = 5

type statsRepo interface {
	Totals(ctx context.Context, boutiqueID string, since time.Time) (orders, units, revenueCents int64, err error)
	TopProducts(ctx context.Context, boutiqueID string, since time.Time, limit int) ([]domain.ProductSales, error)
}

type cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service derives seller statistics from the order ledger on demand. The
// ledger is the single source of truth; the cache only shortcuts the
// recomputation and expires on its own.
type Service struct {
	repo   statsRepo
	cache  cache
	ttl    time.Duration
	topN   int
	logger *zap.Logger
	now    func() time.Time
}

func New(repo statsRepo, cache cache, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		topN:   defaultTopN,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) Aggregate(ctx context.Context, boutiqueID string, period domain.Period) (*domain.SellerStats, error) {
	ctx, span := observability.StartSpan(ctx, "stats.Aggregate")
	defer span.End()

	key := fmt.Sprintf("stats:%s:%s", boutiqueID, period)
	if s.cache != nil {
		var cached domain.SellerStats
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			observability.StatsCacheHits.WithLabelValues("hit").Inc()
			cached.FromCache = true
			return &cached, nil
		}
		observability.StatsCacheHits.WithLabelValues("miss").Inc()
	}

	now := s.now().UTC()
	since := period.Since(now)

	orders, units, revenue, err := s.repo.Totals(ctx, boutiqueID, since)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopProducts(ctx, boutiqueID, since, s.topN)
	if err != nil {
		return nil, err
	}
	if top == nil {
		top = []domain.ProductSales{}
	}

	var avg int64
	if orders > 0 {
		avg = revenue / orders
	}

	result := &domain.SellerStats{
		BoutiqueID:    boutiqueID,
		Period:        period,
		OrderCount:    orders,
		UnitsSold:     units,
		RevenueCents:  revenue,
		AvgOrderCents: avg,
		TopProducts:   top,
		ComputedAt:    now,
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, result, s.ttl); err != nil {
			s.logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return result, nil
}
