package activity

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	logs []Log
}

func (m *memoryRepo) List(_ context.Context, req ListLogsRequest) ([]Log, int, error) {
	var matched []Log
	for _, l := range m.logs {
		if req.Entity != "" && l.Entity != req.Entity {
			continue
		}
		if req.ActorID != nil && l.ActorID != *req.ActorID {
			continue
		}
		if req.From != nil && l.OccurredAt.Before(*req.From) {
			continue
		}
		matched = append(matched, l)
	}
	total := len(matched)
	start := (req.Page - 1) * req.PerPage
	if start >= total {
		return nil, total, nil
	}
	end := start + req.PerPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *memoryRepo) Prune(_ context.Context, before time.Time) (int64, error) {
	var kept []Log
	var pruned int64
	for _, l := range m.logs {
		if l.OccurredAt.Before(before) {
			pruned++
			continue
		}
		kept = append(kept, l)
	}
	m.logs = kept
	return pruned, nil
}

func seedRepo(n int, entity string, at time.Time) *memoryRepo {
	repo := &memoryRepo{}
	for i := 0; i < n; i++ {
		repo.logs = append(repo.logs, Log{
			ID:         int64(i + 1),
			ActorID:    1,
			ActorEmail: "ops@innoventory.io",
			Action:     entity + ".create",
			Entity:     entity,
			EntityID:   "1",
			OccurredAt: at,
		})
	}
	return repo
}

func TestListFiltersByEntity(t *testing.T) {
	repo := seedRepo(3, "customer", time.Now())
	repo.logs = append(repo.logs, Log{ID: 99, ActorID: 1, Entity: "vendor", Action: "vendor.create", OccurredAt: time.Now()})
	svc := NewService(repo)

	logs, total, err := svc.List(context.Background(), ListLogsRequest{Entity: "customer"})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, logs, 3)
}

func TestListPages(t *testing.T) {
	svc := NewService(seedRepo(120, "order", time.Now()))

	logs, total, err := svc.List(context.Background(), ListLogsRequest{Page: 3, PerPage: 50})
	require.NoError(t, err)
	assert.Equal(t, 120, total)
	assert.Len(t, logs, 20)
}

func TestExportCSVCrossesBatches(t *testing.T) {
	svc := NewService(seedRepo(exportBatchSize+10, "order", time.Now()))

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), ListLogsRequest{}, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, exportBatchSize+11)
	assert.Contains(t, lines[0], "occurred_at")
}

func TestPruneRemovesOldEntries(t *testing.T) {
	repo := seedRepo(5, "order", time.Now().AddDate(0, 0, -400))
	repo.logs = append(repo.logs, Log{ID: 100, ActorID: 1, Entity: "order", Action: "order.create", OccurredAt: time.Now()})
	svc := NewService(repo)

	pruned, err := svc.Prune(context.Background(), 180)
	require.NoError(t, err)
	assert.Equal(t, int64(5), pruned)
	assert.Len(t, repo.logs, 1)
}
