package orders

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

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

// newOrderNumber builds a human-readable reference like ORD-20260831-3F2A1B7C.
// The uuid fragment keeps numbers unique without coordinating a sequence.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 || req.PerPage > 100 {
		req.PerPage = 20
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", httpx.ErrValidation, req.Status)
	}
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateOrderRequest, actor *shared.Claims) (*Order, error) {
	o := Order{
		OrderNumber: newOrderNumber(time.Now()),
		CustomerID:  req.CustomerID,
		VendorID:    req.VendorID,
		WorkTypeID:  req.WorkTypeID,
		Title:       req.Title,
		Description: req.Description,
		Status:      StatusNew,
		DueDate:     req.DueDate,
	}
	if actor != nil && !actor.Demo && actor.AccountID > 0 {
		id := actor.AccountID
		o.CreatedBy = &id
	}

	id, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor, "order.create", id, map[string]any{"order_number": o.OrderNumber, "customer_id": o.CustomerID})
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateOrderRequest, actor *shared.Claims) (*Order, error) {
	updates := make(map[string]any)
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	s.record(ctx, actor, "order.update", id, nil)
	return s.repo.Get(ctx, id)
}

func (s *Service) AssignVendor(ctx context.Context, id, vendorID int64, actor *shared.Claims) (*Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status == StatusCompleted || o.Status == StatusCancelled {
		return nil, fmt.Errorf("%w: cannot assign a vendor to a %s order", httpx.ErrConflict, o.Status)
	}
	if err := s.repo.Update(ctx, id, map[string]any{"vendor_id": vendorID}); err != nil {
		return nil, err
	}
	s.record(ctx, actor, "order.assign_vendor", id, map[string]any{"vendor_id": vendorID})
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, next Status, actor *shared.Claims) (*Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", httpx.ErrValidation, next)
	}
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", httpx.ErrConflict, o.Status, next)
	}
	if err := s.repo.Update(ctx, id, map[string]any{"status": next}); err != nil {
		return nil, err
	}
	s.record(ctx, actor, "order.status", id, map[string]any{"from": o.Status, "to": next})
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64, actor *shared.Claims) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "order.delete", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actor *shared.Claims, action string, id int64, meta map[string]any) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		Actor:    actor,
		Action:   action,
		Entity:   "order",
		EntityID: strconv.FormatInt(id, 10),
		Meta:     meta,
	})
}
