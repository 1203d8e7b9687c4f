package auth

import (
	"time"

	"github.com/innoventory/innoventory/internal/shared"
)

// Account represents an authenticated operator account.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         string
	IsActive     bool
	CreatedBy    *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DemoToken is the reserved bearer value that bypasses real verification.
// Any handler receiving it treats the request as pre-authorized with the
// synthetic administrator identity below, regardless of storage state.
const DemoToken = "demo-token"

// demoCredential is an entry in the fixed fallback credential table used
// when no matching account exists in storage (or storage is unreachable).
type demoCredential struct {
	Email       string
	Password    string
	Name        string
	Role        string
	Permissions []string
}

// demoCredentials predates the accounts table. The delegate entry still
// carries the legacy freeform grants instead of named permissions.
var demoCredentials = []demoCredential{
	{
		Email:       "admin@innoventory.io",
		Password:    "admin123",
		Name:        "Demo Administrator",
		Role:        shared.RoleAdmin,
		Permissions: shared.AllPermissions(),
	},
	{
		Email:       "subadmin@innoventory.io",
		Password:    "subadmin123",
		Name:        "Demo Sub-Admin",
		Role:        shared.RoleDelegate,
		Permissions: []string{"read", "write"},
	},
}

// DemoClaims returns the synthetic claim set injected for the sentinel
// token: administrator role with the full permission enumeration.
func DemoClaims() *shared.Claims {
	return &shared.Claims{
		AccountID:   0,
		Email:       "admin@innoventory.io",
		Role:        shared.RoleAdmin,
		Permissions: shared.AllPermissions(),
		Demo:        true,
	}
}
