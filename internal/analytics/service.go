// Package analytics serves the dashboard aggregates. Results are cached in
// Redis behind a versioned key, loaded with parallel queries, and concurrent
// cache misses for the same key are collapsed through singleflight.
package analytics

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL bounds staleness when nothing bumps the version.
const DefaultCacheTTL = 5 * time.Minute

type RevenueSummary struct {
	Paid        float64 `json:"paid"`
	Outstanding float64 `json:"outstanding"`
}

type DashboardSummary struct {
	Customers      int64            `json:"customers"`
	Vendors        int64            `json:"vendors"`
	Accounts       int64            `json:"accounts"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	Revenue        RevenueSummary   `json:"revenue"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

type Service struct {
	repo   Repository
	cache  *Cache
	flight singleflight.Group
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Dashboard returns the cached summary, computing it on a miss.
func (s *Service) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	key, err := s.cache.BuildKey(ctx, "dashboard", "summary")
	if err != nil {
		return nil, err
	}
	v, err, _ := s.flight.Do(key, func() (any, error) {
		var summary DashboardSummary
		err := s.cache.FetchJSON(ctx, key, &summary, func(ctx context.Context) (any, error) {
			return s.loadDashboard(ctx)
		})
		if err != nil {
			return nil, err
		}
		return &summary, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*DashboardSummary), nil
}

func (s *Service) loadDashboard(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{GeneratedAt: time.Now().UTC()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.CountCustomers(ctx)
		summary.Customers = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountVendors(ctx)
		summary.Vendors = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountAccounts(ctx)
		summary.Accounts = n
		return err
	})
	g.Go(func() error {
		counts, err := s.repo.OrdersByStatus(ctx)
		summary.OrdersByStatus = counts
		return err
	})
	g.Go(func() error {
		paid, outstanding, err := s.repo.RevenueTotals(ctx)
		summary.Revenue = RevenueSummary{Paid: paid, Outstanding: outstanding}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

// OrdersByMonth returns per-month order and revenue buckets for the window.
func (s *Service) OrdersByMonth(ctx context.Context, months int) ([]MonthBucket, error) {
	if months < 1 || months > 36 {
		months = 12
	}
	key, err := s.cache.BuildKey(ctx, "dashboard", "orders_by_month", strconv.Itoa(months))
	if err != nil {
		return nil, err
	}
	v, err, _ := s.flight.Do(key, func() (any, error) {
		var buckets []MonthBucket
		err := s.cache.FetchJSON(ctx, key, &buckets, func(ctx context.Context) (any, error) {
			return s.repo.OrdersByMonth(ctx, months)
		})
		if err != nil {
			return nil, err
		}
		return buckets, nil
	})
	if err != nil {
		return nil, err
	}
	buckets, _ := v.([]MonthBucket)
	return buckets, nil
}

// Invalidate bumps the cache version so the next read recomputes.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

// Warmup precomputes the dashboard aggregates, used by the background worker.
func (s *Service) Warmup(ctx context.Context) error {
	if _, err := s.Dashboard(ctx); err != nil {
		return err
	}
	_, err := s.OrdersByMonth(ctx, 12)
	return err
}
