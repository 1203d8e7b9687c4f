package vendors

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/innoventory/innoventory/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, req ListVendorsRequest) ([]Vendor, int, error)
	Get(ctx context.Context, id int64) (*Vendor, error)
	Create(ctx context.Context, v Vendor) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const vendorColumns = `id, name, specialization, email, phone, address, country, is_active, notes, created_by, created_at, updated_at`

func (r *repository) List(ctx context.Context, req ListVendorsRequest) ([]Vendor, int, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM vendors WHERE 1=1`
	args := []any{}
	argCount := 0

	if req.IsActive != nil {
		argCount++
		cond := ` AND is_active = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, *req.IsActive)
	}
	if req.Search != "" {
		argCount++
		cond := ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR specialization ILIKE $` + strconv.Itoa(argCount) + `)`
		query += cond
		countQuery += cond
		args = append(args, "%"+req.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	perPage := req.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}
	argCount++
	query += ` ORDER BY name LIMIT $` + strconv.Itoa(argCount)
	args = append(args, perPage)
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vendors []Vendor
	for rows.Next() {
		var v Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Specialization, &v.Email, &v.Phone, &v.Address, &v.Country,
			&v.IsActive, &v.Notes, &v.CreatedBy, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, err
		}
		vendors = append(vendors, v)
	}
	return vendors, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*Vendor, error) {
	var v Vendor
	err := r.pool.QueryRow(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.Specialization, &v.Email, &v.Phone, &v.Address, &v.Country,
			&v.IsActive, &v.Notes, &v.CreatedBy, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *repository) Create(ctx context.Context, v Vendor) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO vendors (name, specialization, email, phone, address, country, is_active, notes, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		v.Name, v.Specialization, v.Email, v.Phone, v.Address, v.Country, v.IsActive, v.Notes, v.CreatedBy).Scan(&id)
	if err != nil {
		return 0, httpx.TranslatePG(err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	query := `UPDATE vendors SET updated_at = NOW()`
	args := []any{}
	argCount := 0
	for _, col := range []string{"name", "specialization", "email", "phone", "address", "country", "is_active", "notes"} {
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return httpx.TranslatePG(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
