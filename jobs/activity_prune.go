package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/innoventory/innoventory/internal/activity"
)

// ActivityPruneJob trims activity_logs past the retention window.
type ActivityPruneJob struct {
	Service *activity.Service
	Logger  *slog.Logger
}

// NewActivityPruneJob initialises the prune handler.
func NewActivityPruneJob(service *activity.Service, logger *slog.Logger) *ActivityPruneJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityPruneJob{Service: service, Logger: logger}
}

// Handle executes the prune.
func (j *ActivityPruneJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("activity prune: handler not configured")
	}
	var payload ActivityPrunePayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	pruned, err := j.Service.Prune(ctx, payload.RetainDays)
	if err != nil {
		j.Logger.Error("activity prune failed", slog.Any("error", err))
		return err
	}
	j.Logger.Info("activity prune done", slog.Int64("pruned", pruned))
	return nil
}
