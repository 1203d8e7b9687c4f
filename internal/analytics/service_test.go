package analytics

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	loads atomic.Int64
}

func (r *countingRepo) CountCustomers(context.Context) (int64, error) {
	r.loads.Add(1)
	return 12, nil
}

func (r *countingRepo) CountVendors(context.Context) (int64, error) { return 4, nil }

func (r *countingRepo) CountAccounts(context.Context) (int64, error) { return 3, nil }

func (r *countingRepo) OrdersByStatus(context.Context) (map[string]int64, error) {
	return map[string]int64{"new": 5, "in_progress": 2}, nil
}

func (r *countingRepo) RevenueTotals(context.Context) (float64, float64, error) {
	return 1500.50, 320, nil
}

func (r *countingRepo) OrdersByMonth(_ context.Context, months int) ([]MonthBucket, error) {
	r.loads.Add(1)
	return []MonthBucket{{Month: "2026-08", Orders: 7, Revenue: 1500.50}}, nil
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestDashboardCachesSummary(t *testing.T) {
	repo := &countingRepo{}
	svc := NewService(repo, newTestCache(t))
	ctx := context.Background()

	first, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), first.Customers)
	assert.Equal(t, int64(5), first.OrdersByStatus["new"])
	assert.Equal(t, 1500.50, first.Revenue.Paid)

	_, err = svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.loads.Load(), "second read should hit the cache")
}

func TestInvalidateForcesRecompute(t *testing.T) {
	repo := &countingRepo{}
	svc := NewService(repo, newTestCache(t))
	ctx := context.Background()

	_, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx))

	_, err = svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), repo.loads.Load())
}

func TestOrdersByMonthClampsWindow(t *testing.T) {
	repo := &countingRepo{}
	svc := NewService(repo, newTestCache(t))

	buckets, err := svc.OrdersByMonth(context.Background(), -3)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2026-08", buckets[0].Month)
}

func TestNilCachePassesThrough(t *testing.T) {
	repo := &countingRepo{}
	svc := NewService(repo, NewCache(nil, 0))
	ctx := context.Background()

	_, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	_, err = svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), repo.loads.Load(), "no cache means every read loads")
}
