package vendors

import (
	"context"
	"strconv"

	"github.com/innoventory/innoventory/internal/shared"
)

type Service struct {
	repo     Repository
	activity *shared.ActivityLogger
}

func NewService(repo Repository, activity *shared.ActivityLogger) *Service {
	return &Service{repo: repo, activity: activity}
}

func (s *Service) List(ctx context.Context, req ListVendorsRequest) ([]Vendor, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (*Vendor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateVendorRequest, actor *shared.Claims) (*Vendor, error) {
	vendor := Vendor{
		Name:           req.Name,
		Specialization: req.Specialization,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		Country:        req.Country,
		IsActive:       true,
		Notes:          req.Notes,
	}
	if actor != nil && !actor.Demo && actor.AccountID > 0 {
		id := actor.AccountID
		vendor.CreatedBy = &id
	}

	id, err := s.repo.Create(ctx, vendor)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor, "vendor.create", id, map[string]any{"name": vendor.Name})
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateVendorRequest, actor *shared.Claims) (*Vendor, error) {
	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Specialization != nil {
		updates["specialization"] = *req.Specialization
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	s.record(ctx, actor, "vendor.update", id, nil)
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64, actor *shared.Claims) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "vendor.delete", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actor *shared.Claims, action string, id int64, meta map[string]any) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		Actor:    actor,
		Action:   action,
		Entity:   "vendor",
		EntityID: strconv.FormatInt(id, 10),
		Meta:     meta,
	})
}
