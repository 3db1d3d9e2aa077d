package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

type stubStatsRepo struct {
	orders    int64
	units     int64
	revenue   int64
	totalsErr error
	top       []domain.ProductSales
	topErr    error
	lastSince time.Time
	lastLimit int
	calls     int
}

func (s *stubStatsRepo) Totals(_ context.Context, _ string, since time.Time) (int64, int64, int64, error) {
	s.calls++
	s.lastSince = since
	return s.orders, s.units, s.revenue, s.totalsErr
}

func (s *stubStatsRepo) TopProducts(_ context.Context, _ string, _ time.Time, limit int) ([]domain.ProductSales, error) {
	s.lastLimit = limit
	return s.top, s.topErr
}

type mapCache struct {
	values  map[string]domain.SellerStats
	getErr  error
	setErr  error
	setKeys []string
}

func (c *mapCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	*dest.(*domain.SellerStats) = v
	return true, nil
}

func (c *mapCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	if c.values == nil {
		c.values = map[string]domain.SellerStats{}
	}
	c.values[key] = *value.(*domain.SellerStats)
	c.setKeys = append(c.setKeys, key)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
}

func newTestService(repo *stubStatsRepo, c cache) *Service {
	svc := New(repo, c, time.Minute, nil)
	svc.now = fixedNow
	return svc
}

func TestAggregateComputesAverages(t *testing.T) {
	repo := &stubStatsRepo{orders: 4, units: 10, revenue: 10000}
	svc := newTestService(repo, nil)

	got, err := svc.Aggregate(context.Background(), "b1", domain.Period30d)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if got.OrderCount != 4 || got.UnitsSold != 10 || got.RevenueCents != 10000 {
		t.Fatalf("unexpected totals %+v", got)
	}
	if got.AvgOrderCents != 2500 {
		t.Fatalf("avg = %d, want 2500", got.AvgOrderCents)
	}
	if repo.lastLimit != defaultTopN {
		t.Fatalf("top limit = %d, want %d", repo.lastLimit, defaultTopN)
	}
	wantSince := fixedNow().AddDate(0, 0, -30)
	if !repo.lastSince.Equal(wantSince) {
		t.Fatalf("since = %v, want %v", repo.lastSince, wantSince)
	}
}

func TestAggregateZeroOrdersGuardsDivision(t *testing.T) {
	svc := newTestService(&stubStatsRepo{}, nil)
	got, err := svc.Aggregate(context.Background(), "b1", domain.Period7d)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if got.AvgOrderCents != 0 || got.RevenueCents != 0 || got.OrderCount != 0 {
		t.Fatalf("zero-order aggregate should be all zeros, got %+v", got)
	}
	if got.TopProducts == nil || len(got.TopProducts) != 0 {
		t.Fatalf("top products should be empty, got %+v", got.TopProducts)
	}
}

func TestAggregateUsesCache(t *testing.T) {
	repo := &stubStatsRepo{orders: 1, units: 2, revenue: 300}
	c := &mapCache{}
	svc := newTestService(repo, c)

	first, err := svc.Aggregate(context.Background(), "b1", domain.Period7d)
	if err != nil {
		t.Fatalf("first Aggregate: %v", err)
	}
	if first.FromCache {
		t.Fatalf("first call should not come from cache")
	}
	if len(c.setKeys) != 1 || c.setKeys[0] != "stats:b1:7d" {
		t.Fatalf("unexpected cache writes %v", c.setKeys)
	}

	second, err := svc.Aggregate(context.Background(), "b1", domain.Period7d)
	if err != nil {
		t.Fatalf("second Aggregate: %v", err)
	}
	if !second.FromCache {
		t.Fatalf("second call should come from cache")
	}
	if repo.calls != 1 {
		t.Fatalf("repo recomputed despite cache hit: %d calls", repo.calls)
	}

	// A different period is a different key.
	if _, err := svc.Aggregate(context.Background(), "b1", domain.Period90d); err != nil {
		t.Fatalf("third Aggregate: %v", err)
	}
	if repo.calls != 2 {
		t.Fatalf("expected recomputation for new period, got %d calls", repo.calls)
	}
}

func TestAggregateCacheFailureFallsThrough(t *testing.T) {
	repo := &stubStatsRepo{orders: 1, revenue: 100}
	c := &mapCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	svc := newTestService(repo, c)

	got, err := svc.Aggregate(context.Background(), "b1", domain.Period1y)
	if err != nil {
		t.Fatalf("Aggregate should survive cache failure: %v", err)
	}
	if got.OrderCount != 1 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestAggregateRepoError(t *testing.T) {
	svc := newTestService(&stubStatsRepo{totalsErr: errors.New("boom")}, nil)
	if _, err := svc.Aggregate(context.Background(), "b1", domain.Period7d); err == nil {
		t.Fatalf("expected error")
	}
}
