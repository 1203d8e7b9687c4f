package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/innoventory/innoventory/internal/auth"
	"github.com/innoventory/innoventory/internal/shared"
)

type stubRepo struct {
	account *auth.Account
	perms   []string
	err     error
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.account == nil || s.account.Email != email {
		return nil, shared.ErrNotFound
	}
	return s.account, nil
}

func (s *stubRepo) Permissions(ctx context.Context, accountID int64) ([]string, error) {
	return s.perms, nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthenticateStoredAccount(t *testing.T) {
	repo := &stubRepo{
		account: &auth.Account{
			ID:           7,
			Email:        "ops@innoventory.io",
			PasswordHash: hash(t, "correct-horse"),
			Name:         "Ops",
			Role:         shared.RoleDelegate,
			IsActive:     true,
		},
		perms: []string{shared.PermManageCustomers, shared.PermViewReports},
	}
	svc := auth.NewService(repo, nil)

	identity, err := svc.Authenticate(context.Background(), "ops@innoventory.io", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, int64(7), identity.AccountID)
	require.Equal(t, []string{shared.PermManageCustomers, shared.PermViewReports}, identity.Permissions)
	require.False(t, identity.Demo)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := &stubRepo{
		account: &auth.Account{
			ID:           7,
			Email:        "ops@innoventory.io",
			PasswordHash: hash(t, "correct-horse"),
			IsActive:     true,
		},
	}
	svc := auth.NewService(repo, nil)

	_, err := svc.Authenticate(context.Background(), "ops@innoventory.io", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	repo := &stubRepo{
		account: &auth.Account{
			ID:           7,
			Email:        "ops@innoventory.io",
			PasswordHash: hash(t, "correct-horse"),
			IsActive:     false,
		},
	}
	svc := auth.NewService(repo, nil)

	_, err := svc.Authenticate(context.Background(), "ops@innoventory.io", "correct-horse")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateDemoFallback(t *testing.T) {
	svc := auth.NewService(&stubRepo{}, nil)

	identity, err := svc.Authenticate(context.Background(), "admin@innoventory.io", "admin123")
	require.NoError(t, err)
	require.True(t, identity.Demo)
	require.Equal(t, shared.RoleAdmin, identity.Role)
	require.ElementsMatch(t, shared.AllPermissions(), identity.Permissions)
}

func TestAuthenticateDemoDelegateCarriesLegacyGrants(t *testing.T) {
	svc := auth.NewService(&stubRepo{}, nil)

	identity, err := svc.Authenticate(context.Background(), "subadmin@innoventory.io", "subadmin123")
	require.NoError(t, err)
	require.True(t, identity.Demo)
	require.Equal(t, shared.RoleDelegate, identity.Role)
	require.Equal(t, []string{"read", "write"}, identity.Permissions)
}

func TestAuthenticateStorageErrorFallsThroughToDemoTable(t *testing.T) {
	repo := &stubRepo{err: errors.New("connection refused")}
	svc := auth.NewService(repo, nil)

	identity, err := svc.Authenticate(context.Background(), "admin@innoventory.io", "admin123")
	require.NoError(t, err)
	require.True(t, identity.Demo)

	_, err = svc.Authenticate(context.Background(), "nobody@innoventory.io", "whatever")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}
