package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/innoventory/innoventory/internal/platform/httpx"
	"github.com/innoventory/innoventory/internal/shared"
)

type memoryRepo struct {
	accounts map[int64]Account
	hashes   map[int64]string
	grants   map[int64][]string
	nextID   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		accounts: make(map[int64]Account),
		hashes:   make(map[int64]string),
		grants:   make(map[int64][]string),
	}
}

func (r *memoryRepo) List(ctx context.Context, req ListAccountsRequest) ([]Account, int, error) {
	var out []Account
	for _, a := range r.accounts {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	a.Permissions = append([]string(nil), r.grants[id]...)
	return &a, nil
}

func (r *memoryRepo) Create(ctx context.Context, acc Account, passwordHash string) (int64, error) {
	for _, existing := range r.accounts {
		if existing.Email == acc.Email {
			return 0, httpx.ErrDuplicate
		}
	}
	r.nextID++
	acc.ID = r.nextID
	r.accounts[acc.ID] = acc
	r.hashes[acc.ID] = passwordHash
	r.grants[acc.ID] = append([]string(nil), acc.Permissions...)
	return acc.ID, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	a, ok := r.accounts[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		a.Name = v.(string)
	}
	if v, ok := updates["role"]; ok {
		a.Role = v.(string)
	}
	if v, ok := updates["is_active"]; ok {
		a.IsActive = v.(bool)
	}
	if v, ok := updates["password_hash"]; ok {
		r.hashes[id] = v.(string)
	}
	r.accounts[id] = a
	return nil
}

func (r *memoryRepo) ReplaceGrants(ctx context.Context, id int64, permissions []string) error {
	r.grants[id] = append([]string(nil), permissions...)
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.accounts[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.accounts, id)
	delete(r.hashes, id)
	delete(r.grants, id)
	return nil
}

func adminClaims() *shared.Claims {
	return &shared.Claims{AccountID: 1, Email: "root@innoventory.io", Role: shared.RoleAdmin}
}

func TestCreateAccountHashesPasswordAndStoresGrants(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	acc, err := svc.Create(context.Background(), CreateAccountRequest{
		Email:       "sub@innoventory.io",
		Password:    "supersecret",
		Name:        "Sub Admin",
		Role:        shared.RoleDelegate,
		Permissions: []string{shared.PermManageCustomers, shared.PermViewReports},
	}, adminClaims())
	require.NoError(t, err)
	require.Equal(t, []string{shared.PermManageCustomers, shared.PermViewReports}, acc.Permissions)
	require.NotNil(t, acc.CreatedBy)
	require.Equal(t, int64(1), *acc.CreatedBy)

	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.hashes[acc.ID]), []byte("supersecret")))
}

func TestCreateAccountDemoActorHasNoCreatedBy(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	acc, err := svc.Create(context.Background(), CreateAccountRequest{
		Email:    "sub@innoventory.io",
		Password: "supersecret",
		Name:     "Sub Admin",
		Role:     shared.RoleDelegate,
	}, &shared.Claims{AccountID: 0, Role: shared.RoleAdmin, Demo: true})
	require.NoError(t, err)
	require.Nil(t, acc.CreatedBy)
}

func TestCreateAccountRejectsUnknownPermission(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	_, err := svc.Create(context.Background(), CreateAccountRequest{
		Email:       "sub@innoventory.io",
		Password:    "supersecret",
		Name:        "Sub Admin",
		Role:        shared.RoleDelegate,
		Permissions: []string{"manage-everything"},
	}, adminClaims())
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	req := CreateAccountRequest{
		Email:    "sub@innoventory.io",
		Password: "supersecret",
		Name:     "Sub Admin",
		Role:     shared.RoleDelegate,
	}
	_, err := svc.Create(context.Background(), req, adminClaims())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req, adminClaims())
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestUpdateReplacesGrantSet(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	acc, err := svc.Create(context.Background(), CreateAccountRequest{
		Email:       "sub@innoventory.io",
		Password:    "supersecret",
		Name:        "Sub Admin",
		Role:        shared.RoleDelegate,
		Permissions: []string{shared.PermManageCustomers},
	}, adminClaims())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), acc.ID, UpdateAccountRequest{
		Permissions: []string{shared.PermManageVendors, shared.PermViewAnalytics},
	}, adminClaims())
	require.NoError(t, err)
	require.Equal(t, []string{shared.PermManageVendors, shared.PermViewAnalytics}, updated.Permissions)
}

func TestDeleteRemovesGrants(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	acc, err := svc.Create(context.Background(), CreateAccountRequest{
		Email:       "sub@innoventory.io",
		Password:    "supersecret",
		Name:        "Sub Admin",
		Role:        shared.RoleDelegate,
		Permissions: []string{shared.PermManageCustomers},
	}, adminClaims())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), acc.ID, adminClaims()))
	require.Empty(t, repo.grants[acc.ID])

	_, err = svc.Get(context.Background(), acc.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeactivateKeepsRow(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	acc, err := svc.Create(context.Background(), CreateAccountRequest{
		Email:    "sub@innoventory.io",
		Password: "supersecret",
		Name:     "Sub Admin",
		Role:     shared.RoleDelegate,
	}, adminClaims())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), acc.ID, adminClaims()))
	got, err := svc.Get(context.Background(), acc.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)
}
