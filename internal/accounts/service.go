package accounts

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/innoventory/innoventory/internal/platform/httpx"
	"github.com/innoventory/innoventory/internal/shared"
)

// Service handles account management business logic.
type Service struct {
	repo     Repository
	activity *shared.ActivityLogger
}

// NewService builds a Service instance.
func NewService(repo Repository, activity *shared.ActivityLogger) *Service {
	return &Service{repo: repo, activity: activity}
}

func (s *Service) List(ctx context.Context, req ListAccountsRequest) ([]Account, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (*Account, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a new sub-admin account with its permission grants.
// Delegates cannot self-register; routing enforces the manage-users grant.
func (s *Service) Create(ctx context.Context, req CreateAccountRequest, actor *shared.Claims) (*Account, error) {
	if err := validatePermissions(req.Permissions); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc := Account{
		Email:       req.Email,
		Name:        req.Name,
		Role:        req.Role,
		IsActive:    true,
		Permissions: req.Permissions,
	}
	// The synthetic demo identity has no accounts row; recording it as
	// created_by would violate the foreign key.
	if actor != nil && !actor.Demo && actor.AccountID > 0 {
		id := actor.AccountID
		acc.CreatedBy = &id
	}

	id, err := s.repo.Create(ctx, acc, string(hashed))
	if err != nil {
		return nil, err
	}
	acc.ID = id

	s.record(ctx, actor, "account.create", id, map[string]any{"email": acc.Email, "role": acc.Role})
	return s.repo.Get(ctx, id)
}

// Update edits account fields. A non-nil Permissions slice replaces the
// entire grant set.
func (s *Service) Update(ctx context.Context, id int64, req UpdateAccountRequest, actor *shared.Claims) (*Account, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password_hash"] = string(hashed)
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	if req.Permissions != nil {
		if err := validatePermissions(req.Permissions); err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceGrants(ctx, id, req.Permissions); err != nil {
			return nil, err
		}
	}

	s.record(ctx, actor, "account.update", id, nil)
	return s.repo.Get(ctx, id)
}

// Deactivate is the common soft-delete path.
func (s *Service) Deactivate(ctx context.Context, id int64, actor *shared.Claims) error {
	if err := s.repo.Update(ctx, id, map[string]any{"is_active": false}); err != nil {
		return err
	}
	s.record(ctx, actor, "account.deactivate", id, nil)
	return nil
}

// Delete hard-deletes the account together with its grants.
func (s *Service) Delete(ctx context.Context, id int64, actor *shared.Claims) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "account.delete", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actor *shared.Claims, action string, id int64, meta map[string]any) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		Actor:    actor,
		Action:   action,
		Entity:   "account",
		EntityID: strconv.FormatInt(id, 10),
		Meta:     meta,
	})
}

func validatePermissions(perms []string) error {
	seen := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		if !shared.ValidPermission(p) {
			return fmt.Errorf("%w: unknown permission %q", httpx.ErrValidation, p)
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: duplicate permission %q", httpx.ErrValidation, p)
		}
		seen[p] = struct{}{}
	}
	return nil
}
