package activity

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, req ListLogsRequest) ([]Log, int, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 || req.PerPage > 100 {
		req.PerPage = 50
	}
	return s.repo.List(ctx, req)
}

const exportBatchSize = 500

// ExportCSV streams the matching timeline as CSV, newest first.
func (s *Service) ExportCSV(ctx context.Context, req ListLogsRequest, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"occurred_at", "actor_id", "actor_email", "action", "entity", "entity_id", "meta"}); err != nil {
		return err
	}

	req.Page = 1
	req.PerPage = exportBatchSize
	for {
		batch, total, err := s.repo.List(ctx, req)
		if err != nil {
			return err
		}
		for _, l := range batch {
			row := []string{
				l.OccurredAt.Format(time.RFC3339),
				strconv.FormatInt(l.ActorID, 10),
				l.ActorEmail,
				l.Action,
				l.Entity,
				l.EntityID,
				string(l.Meta),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		if req.Page*req.PerPage >= total || len(batch) == 0 {
			break
		}
		req.Page++
	}
	return nil
}

// Prune deletes entries older than the retention window.
func (s *Service) Prune(ctx context.Context, retainDays int) (int64, error) {
	if retainDays <= 0 {
		retainDays = 180
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retainDays)
	return s.repo.Prune(ctx, cutoff)
}
