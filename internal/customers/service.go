package customers

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

func (s *Service) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateCustomerRequest, actor *shared.Claims) (*Customer, error) {
	customer := Customer{
		Name:     req.Name,
		Company:  req.Company,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		IsActive: true,
		Notes:    req.Notes,
	}
	if actor != nil && !actor.Demo && actor.AccountID > 0 {
		id := actor.AccountID
		customer.CreatedBy = &id
	}

	id, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor, "customer.create", id, map[string]any{"name": customer.Name})
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest, actor *shared.Claims) (*Customer, error) {
	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Company != nil {
		updates["company"] = *req.Company
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
	if req.City != nil {
		updates["city"] = *req.City
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
	s.record(ctx, actor, "customer.update", id, nil)
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64, actor *shared.Claims) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "customer.delete", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actor *shared.Claims, action string, id int64, meta map[string]any) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		Actor:    actor,
		Action:   action,
		Entity:   "customer",
		EntityID: strconv.FormatInt(id, 10),
		Meta:     meta,
	})
}
