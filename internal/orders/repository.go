package orders

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/innoventory/innoventory/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error)
	Get(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, o Order) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const orderColumns = `id, order_number, customer_id, vendor_id, work_type_id, title, description, status, due_date, created_by, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.VendorID, &o.WorkTypeID,
		&o.Title, &o.Description, &o.Status, &o.DueDate, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *repository) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argCount := 0

	if req.Status != "" {
		argCount++
		where += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, req.Status)
	}
	if req.CustomerID != nil {
		argCount++
		where += ` AND customer_id = $` + strconv.Itoa(argCount)
		args = append(args, *req.CustomerID)
	}
	if req.VendorID != nil {
		argCount++
		where += ` AND vendor_id = $` + strconv.Itoa(argCount)
		args = append(args, *req.VendorID)
	}
	if req.Search != "" {
		argCount++
		where += ` AND (title ILIKE $` + strconv.Itoa(argCount) + ` OR order_number ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+req.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders` + where + ` ORDER BY created_at DESC`
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

	var list []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *o)
	}
	return list, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

func (r *repository) Create(ctx context.Context, o Order) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO orders (order_number, customer_id, vendor_id, work_type_id, title, description, status, due_date, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		o.OrderNumber, o.CustomerID, o.VendorID, o.WorkTypeID, o.Title, o.Description, o.Status, o.DueDate, o.CreatedBy).Scan(&id)
	if err != nil {
		return 0, httpx.TranslatePG(err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	query := `UPDATE orders SET updated_at = NOW()`
	args := []any{}
	argCount := 0
	for _, col := range []string{"title", "description", "due_date", "status", "vendor_id"} {
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

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return httpx.TranslatePG(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
