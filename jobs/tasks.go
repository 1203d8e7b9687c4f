package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeActivityPrune trims old activity-log rows.
	TaskTypeActivityPrune = "activity:prune"
	// TaskTypeDashboardWarmup refreshes the cached dashboard aggregates.
	TaskTypeDashboardWarmup = "dashboard:warmup"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// HandleSendEmailTask processes TaskTypeSendEmail tasks.
func HandleSendEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// Placeholder: integrate with SMTP once the mail provider is chosen.
	fmt.Printf("[jobs] send email to %s subject=%s\n", payload.To, payload.Subject)
	return nil
}

// ActivityPrunePayload controls how much history the prune keeps.
type ActivityPrunePayload struct {
	RetainDays int `json:"retain_days"`
}

// NewActivityPruneTask constructs an activity-prune task.
func NewActivityPruneTask(payload ActivityPrunePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeActivityPrune, data), nil
}

// NewDashboardWarmupTask constructs a dashboard warmup task with no payload.
func NewDashboardWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskTypeDashboardWarmup, nil)
}
