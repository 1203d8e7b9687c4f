package shared

import "strings"

// Account roles. Administrators implicitly hold every permission.
const (
	RoleAdmin    = "admin"
	RoleDelegate = "delegate"
)

// Platform permissions grantable to delegate accounts.
const (
	PermManageUsers     = "manage-users"
	PermManageCustomers = "manage-customers"
	PermManageVendors   = "manage-vendors"
	PermManageOrders    = "manage-orders"
	PermViewAnalytics   = "view-analytics"
	PermManagePayments  = "manage-payments"
	PermViewReports     = "view-reports"
)

// AllPermissions lists every grantable permission.
func AllPermissions() []string {
	return []string{
		PermManageUsers,
		PermManageCustomers,
		PermManageVendors,
		PermManageOrders,
		PermViewAnalytics,
		PermManagePayments,
		PermViewReports,
	}
}

// ValidPermission reports whether name is part of the permission enumeration.
func ValidPermission(name string) bool {
	for _, p := range AllPermissions() {
		if p == name {
			return true
		}
	}
	return false
}

// OpShape classifies an operation for legacy grant matching. The pre-database
// demo-user table granted freeform "read"/"write"/"delete" strings instead of
// named permissions; those grants still authorize operations of the matching
// shape.
type OpShape string

const (
	ShapeRead   OpShape = "read"
	ShapeWrite  OpShape = "write"
	ShapeDelete OpShape = "delete"
)

// Allowed is the single capability-resolution gate used by every handler.
// An operation is authorized when the claims hold the exact permission, hold
// a legacy freeform grant matching the operation shape, or carry the admin
// role. Keeping the three checks in one place keeps handlers from drifting
// out of sync with each other.
func Allowed(c *Claims, perm string, shape OpShape) bool {
	if c == nil {
		return false
	}
	if c.Role == RoleAdmin {
		return true
	}
	legacy := string(shape)
	for _, granted := range c.Permissions {
		granted = strings.TrimSpace(granted)
		if granted == perm || granted == legacy {
			return true
		}
	}
	return false
}
