package invoices

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/innoventory/innoventory/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error)
	Get(ctx context.Context, id int64) (*Invoice, error)
	Create(ctx context.Context, inv Invoice) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const invoiceColumns = `id, invoice_number, order_id, customer_email, amount, tax, total, status, issued_at, paid_at, notes, created_by, created_at, updated_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.OrderID, &inv.CustomerEmail,
		&inv.Amount, &inv.Tax, &inv.Total, &inv.Status, &inv.IssuedAt, &inv.PaidAt,
		&inv.Notes, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *repository) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argCount := 0

	if req.Status != "" {
		argCount++
		where += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, req.Status)
	}
	if req.OrderID != nil {
		argCount++
		where += ` AND order_id = $` + strconv.Itoa(argCount)
		args = append(args, *req.OrderID)
	}
	if req.From != nil {
		argCount++
		where += ` AND created_at >= $` + strconv.Itoa(argCount)
		args = append(args, *req.From)
	}
	if req.To != nil {
		argCount++
		where += ` AND created_at < $` + strconv.Itoa(argCount)
		args = append(args, *req.To)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices` + where + ` ORDER BY created_at DESC`
	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, req.PerPage)
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, (req.Page-1)*req.PerPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *inv)
	}
	return list, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*Invoice, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	return scanInvoice(row)
}

func (r *repository) Create(ctx context.Context, inv Invoice) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO invoices (invoice_number, order_id, customer_email, amount, tax, total, status, notes, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		inv.InvoiceNumber, inv.OrderID, inv.CustomerEmail, inv.Amount, inv.Tax, inv.Total,
		inv.Status, inv.Notes, inv.CreatedBy).Scan(&id)
	if err != nil {
		return 0, httpx.TranslatePG(err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	query := `UPDATE invoices SET updated_at = NOW()`
	args := []any{}
	argCount := 0
	for _, col := range []string{"amount", "tax", "total", "status", "issued_at", "paid_at", "notes"} {
		if v, ok := updates[col]; ok {
			argCount++
			query += `, ` + col + ` = $` + strconv.Itoa(argCount)
			args = append(args, v)
		}
	}
	argCount++
	query += ` WHERE id = $` + strconv.Itoa(argCount)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return httpx.TranslatePG(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
