// Package activity serves the read side of the audit trail. Writes happen
// from domain services through shared.ActivityLogger; this package pages
// and exports what they recorded.
package activity

import (
	"encoding/json"
	"time"
)

type Log struct {
	ID         int64           `json:"id" db:"id"`
	ActorID    int64           `json:"actor_id" db:"actor_id"`
	ActorEmail string          `json:"actor_email" db:"actor_email"`
	Action     string          `json:"action" db:"action"`
	Entity     string          `json:"entity" db:"entity"`
	EntityID   string          `json:"entity_id" db:"entity_id"`
	Meta       json.RawMessage `json:"meta,omitempty" db:"meta"`
	OccurredAt time.Time       `json:"occurred_at" db:"occurred_at"`
}

type ListLogsRequest struct {
	ActorID *int64
	Entity  string
	Action  string
	From    *time.Time
	To      *time.Time
	Page    int
	PerPage int
}
