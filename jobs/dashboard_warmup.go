package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/innoventory/innoventory/internal/analytics"
)

// DashboardWarmupJob precomputes the dashboard aggregates so the first
// request after an invalidation does not pay the load.
type DashboardWarmupJob struct {
	Service *analytics.Service
	Logger  *slog.Logger
}

// NewDashboardWarmupJob initialises the warmup handler.
func NewDashboardWarmupJob(service *analytics.Service, logger *slog.Logger) *DashboardWarmupJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardWarmupJob{Service: service, Logger: logger}
}

// Handle executes the warmup.
func (j *DashboardWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("dashboard warmup: handler not configured")
	}
	if err := j.Service.Warmup(ctx); err != nil {
		j.Logger.Error("dashboard warmup failed", slog.Any("error", err))
		return err
	}
	j.Logger.Info("dashboard warmup done")
	return nil
}
