package worktypes

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/innoventory/innoventory/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, req ListWorkTypesRequest) ([]WorkType, error)
	Get(ctx context.Context, id int64) (*WorkType, error)
	Create(ctx context.Context, wt WorkType) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
	CountChildren(ctx context.Context, id int64) (int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const workTypeColumns = `id, name, description, parent_id, is_active, created_at, updated_at`

func (r *repository) List(ctx context.Context, req ListWorkTypesRequest) ([]WorkType, error) {
	query := `SELECT ` + workTypeColumns + ` FROM work_types WHERE 1=1`
	args := []any{}
	argCount := 0

	if req.ParentID != nil {
		argCount++
		query += ` AND parent_id = $` + strconv.Itoa(argCount)
		args = append(args, *req.ParentID)
	}
	if req.IsActive != nil {
		argCount++
		query += ` AND is_active = $` + strconv.Itoa(argCount)
		args = append(args, *req.IsActive)
	}
	if req.Search != "" {
		argCount++
		query += ` AND name ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+req.Search+"%")
	}
	query += ` ORDER BY parent_id NULLS FIRST, name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []WorkType
	for rows.Next() {
		var wt WorkType
		if err := rows.Scan(&wt.ID, &wt.Name, &wt.Description, &wt.ParentID, &wt.IsActive, &wt.CreatedAt, &wt.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, wt)
	}
	return types, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*WorkType, error) {
	var wt WorkType
	err := r.pool.QueryRow(ctx, `SELECT `+workTypeColumns+` FROM work_types WHERE id = $1`, id).
		Scan(&wt.ID, &wt.Name, &wt.Description, &wt.ParentID, &wt.IsActive, &wt.CreatedAt, &wt.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &wt, nil
}

func (r *repository) Create(ctx context.Context, wt WorkType) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO work_types (name, description, parent_id, is_active) VALUES ($1, $2, $3, $4) RETURNING id`,
		wt.Name, wt.Description, wt.ParentID, wt.IsActive).Scan(&id)
	if err != nil {
		return 0, httpx.TranslatePG(err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	query := `UPDATE work_types SET updated_at = NOW()`
	args := []any{}
	argCount := 0
	for _, col := range []string{"name", "description", "is_active"} {
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM work_types WHERE id = $1`, id)
	if err != nil {
		return httpx.TranslatePG(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) CountChildren(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM work_types WHERE parent_id = $1`, id).Scan(&count)
	return count, err
}
