package worktypes

import (
	"context"
	"fmt"
	"strconv"

	"github.com/innoventory/innoventory/internal/platform/httpx"
	"github.com/innoventory/innoventory/internal/shared"
)

type Service struct {
	repo     Repository
	activity *shared.ActivityLogger
}

func NewService(repo Repository, activity *shared.ActivityLogger) *Service {
	return &Service{repo: repo, activity: activity}
}

func (s *Service) List(ctx context.Context, req ListWorkTypesRequest) ([]WorkType, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (*WorkType, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateWorkTypeRequest, actor *shared.Claims) (*WorkType, error) {
	if req.ParentID != nil {
		parent, err := s.repo.Get(ctx, *req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("%w: parent work type not found", httpx.ErrValidation)
		}
		// The taxonomy is two levels deep. A sub-type cannot be a parent.
		if parent.ParentID != nil {
			return nil, fmt.Errorf("%w: parent must be a top-level work type", httpx.ErrValidation)
		}
	}

	wt := WorkType{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    true,
	}
	id, err := s.repo.Create(ctx, wt)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor, "worktype.create", id, map[string]any{"name": wt.Name})
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateWorkTypeRequest, actor *shared.Claims) (*WorkType, error) {
	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	s.record(ctx, actor, "worktype.update", id, nil)
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64, actor *shared.Claims) error {
	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return fmt.Errorf("%w: work type has %d sub-types", httpx.ErrConflict, children)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "worktype.delete", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actor *shared.Claims, action string, id int64, meta map[string]any) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		Actor:    actor,
		Action:   action,
		Entity:   "worktype",
		EntityID: strconv.FormatInt(id, 10),
		Meta:     meta,
	})
}
