package models

// UserRole defines the staff roles that can sign in
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleKitchen UserRole = "kitchen"
	RoleBilling UserRole = "billing"
)

// Roles lists every staff role in credential lookup order
var Roles = []UserRole{RoleAdmin, RoleKitchen, RoleBilling}

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleKitchen, RoleBilling:
		return true
	}
	return false
}

// Home is the dashboard a signed-in role lands on
func (r UserRole) Home() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleKitchen:
		return "/kitchen"
	case RoleBilling:
		return "/billing"
	}
	return "/login"
}
