package analytics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MonthBucket aggregates order volume and paid revenue for one month.
type MonthBucket struct {
	Month   string  `json:"month"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type Repository interface {
	CountCustomers(ctx context.Context) (int64, error)
	CountVendors(ctx context.Context) (int64, error)
	CountAccounts(ctx context.Context) (int64, error)
	OrdersByStatus(ctx context.Context) (map[string]int64, error)
	RevenueTotals(ctx context.Context) (paid, outstanding float64, err error)
	OrdersByMonth(ctx context.Context, months int) ([]MonthBucket, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) CountCustomers(ctx context.Context) (int64, error) {
	return r.countActive(ctx, `SELECT COUNT(*) FROM customers WHERE is_active`)
}

func (r *repository) CountVendors(ctx context.Context) (int64, error) {
	return r.countActive(ctx, `SELECT COUNT(*) FROM vendors WHERE is_active`)
}

func (r *repository) CountAccounts(ctx context.Context) (int64, error) {
	return r.countActive(ctx, `SELECT COUNT(*) FROM accounts WHERE is_active`)
}

func (r *repository) countActive(ctx context.Context, query string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, query).Scan(&n)
	return n, err
}

func (r *repository) OrdersByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *repository) RevenueTotals(ctx context.Context) (float64, float64, error) {
	var paid, outstanding float64
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(total) FILTER (WHERE status = 'paid'), 0),
			COALESCE(SUM(total) FILTER (WHERE status = 'issued'), 0)
		FROM invoices`).Scan(&paid, &outstanding)
	return paid, outstanding, err
}

func (r *repository) OrdersByMonth(ctx context.Context, months int) ([]MonthBucket, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			date_trunc('month', o.created_at) AS month,
			COUNT(DISTINCT o.id),
			COALESCE(SUM(i.total) FILTER (WHERE i.status = 'paid'), 0)
		FROM orders o
		LEFT JOIN invoices i ON i.order_id = o.id
		WHERE o.created_at >= date_trunc('month', NOW()) - make_interval(months => $1 - 1)
		GROUP BY 1
		ORDER BY 1`, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []MonthBucket
	for rows.Next() {
		var month time.Time
		var b MonthBucket
		if err := rows.Scan(&month, &b.Orders, &b.Revenue); err != nil {
			return nil, err
		}
		b.Month = month.Format("2006-01")
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}
