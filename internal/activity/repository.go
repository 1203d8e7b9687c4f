package activity

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context, req ListLogsRequest) ([]Log, int, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, req ListLogsRequest) ([]Log, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argCount := 0

	if req.ActorID != nil {
		argCount++
		where += ` AND actor_id = $` + strconv.Itoa(argCount)
		args = append(args, *req.ActorID)
	}
	if req.Entity != "" {
		argCount++
		where += ` AND entity = $` + strconv.Itoa(argCount)
		args = append(args, req.Entity)
	}
	if req.Action != "" {
		argCount++
		where += ` AND action = $` + strconv.Itoa(argCount)
		args = append(args, req.Action)
	}
	if req.From != nil {
		argCount++
		where += ` AND occurred_at >= $` + strconv.Itoa(argCount)
		args = append(args, *req.From)
	}
	if req.To != nil {
		argCount++
		where += ` AND occurred_at < $` + strconv.Itoa(argCount)
		args = append(args, *req.To)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, actor_id, actor_email, action, entity, entity_id, meta, occurred_at
		FROM activity_logs` + where + ` ORDER BY occurred_at DESC`
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

	var logs []Log
	for rows.Next() {
		var l Log
		if err := rows.Scan(&l.ID, &l.ActorID, &l.ActorEmail, &l.Action, &l.Entity, &l.EntityID, &l.Meta, &l.OccurredAt); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
	}
	return logs, total, rows.Err()
}

func (r *repository) Prune(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM activity_logs WHERE occurred_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
