package shared

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityEntry represents a record stored in activity_logs.
type ActivityEntry struct {
	Actor    *Claims
	Action   string
	Entity   string
	EntityID string
	Meta     map[string]any
	At       time.Time
}

// ActivityLogger writes records into activity_logs. Writes are best-effort:
// failures are logged and swallowed so they never fail the primary operation.
type ActivityLogger struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewActivityLogger returns a new ActivityLogger.
func NewActivityLogger(pool *pgxpool.Pool, logger *slog.Logger) *ActivityLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityLogger{pool: pool, logger: logger}
}

// Record persists the entry. Entries attributed to the synthetic demo
// identity are dropped: that identity has no accounts row and inserting it
// would trip the actor foreign key.
func (l *ActivityLogger) Record(ctx context.Context, entry ActivityEntry) {
	if l == nil || l.pool == nil {
		return
	}
	if entry.Actor == nil || entry.Actor.Demo || entry.Actor.AccountID == 0 {
		return
	}
	if entry.Action == "" || entry.Entity == "" {
		l.logger.Warn("activity entry missing action/entity", slog.String("entity", entry.Entity))
		return
	}
	metaJSON, err := json.Marshal(entry.Meta)
	if err != nil {
		l.logger.Warn("marshal activity meta", slog.Any("error", err))
		return
	}
	at := entry.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err = l.pool.Exec(ctx,
		`INSERT INTO activity_logs (actor_id, actor_email, action, entity, entity_id, meta, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.Actor.AccountID, entry.Actor.Email, entry.Action, entry.Entity, entry.EntityID, metaJSON, at)
	if err != nil {
		l.logger.Warn("record activity", slog.Any("error", err), slog.String("action", entry.Action))
	}
}
