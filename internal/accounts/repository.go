package accounts

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/innoventory/innoventory/internal/platform/db"
	"github.com/innoventory/innoventory/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, req ListAccountsRequest) ([]Account, int, error)
	Get(ctx context.Context, id int64) (*Account, error)
	Create(ctx context.Context, acc Account, passwordHash string) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	ReplaceGrants(ctx context.Context, id int64, permissions []string) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, req ListAccountsRequest) ([]Account, int, error) {
	query := `SELECT id, email, name, role, is_active, created_by, created_at, updated_at FROM accounts WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM accounts WHERE 1=1`
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
		cond := ` AND (email ILIKE $` + strconv.Itoa(argCount) + ` OR name ILIKE $` + strconv.Itoa(argCount) + `)`
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
	query += ` ORDER BY email LIMIT $` + strconv.Itoa(argCount)
	args = append(args, perPage)
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Email, &a.Name, &a.Role, &a.IsActive, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	return accounts, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*Account, error) {
	var a Account
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, name, role, is_active, created_by, created_at, updated_at FROM accounts WHERE id = $1`, id).
		Scan(&a.ID, &a.Email, &a.Name, &a.Role, &a.IsActive, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT permission FROM permission_grants WHERE account_id = $1 ORDER BY permission`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		a.Permissions = append(a.Permissions, p)
	}
	return &a, rows.Err()
}

func (r *repository) Create(ctx context.Context, acc Account, passwordHash string) (int64, error) {
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO accounts (email, password_hash, name, role, is_active, created_by)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			acc.Email, passwordHash, acc.Name, acc.Role, acc.IsActive, acc.CreatedBy).Scan(&id)
		if err != nil {
			return httpx.TranslatePG(err)
		}
		for _, perm := range acc.Permissions {
			if _, err := tx.Exec(ctx,
				`INSERT INTO permission_grants (account_id, permission) VALUES ($1, $2)`, id, perm); err != nil {
				return httpx.TranslatePG(err)
			}
		}
		return nil
	})
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	query := `UPDATE accounts SET updated_at = NOW()`
	args := []any{}
	argCount := 0
	for _, col := range []string{"name", "password_hash", "role", "is_active"} {
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

// ReplaceGrants applies replace-all-then-recreate semantics: the full grant
// set is dropped and rewritten in one transaction.
func (r *repository) ReplaceGrants(ctx context.Context, id int64, permissions []string) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM permission_grants WHERE account_id = $1`, id); err != nil {
			return err
		}
		for _, perm := range permissions {
			if _, err := tx.Exec(ctx,
				`INSERT INTO permission_grants (account_id, permission) VALUES ($1, $2)`, id, perm); err != nil {
				return httpx.TranslatePG(err)
			}
		}
		return nil
	})
}

// Delete removes the account and its grants together so no orphaned grants
// remain queryable.
func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM permission_grants WHERE account_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return httpx.ErrNotFound
		}
		return nil
	})
}
