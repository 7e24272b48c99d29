package domain

const (
	RoleEmployee   = "EMPLOYEE"
	RoleManager    = "MANAGER"
	RoleHRAdmin    = "HR_ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// Actor is the authenticated caller as seen by workflow services.
type Actor struct {
	UserID     string
	EmployeeID string
	TenantID   string
	Role       string
}

func (a Actor) IsAdmin() bool {
	return IsAdminRole(a.Role)
}

func IsAdminRole(role string) bool {
	return role == RoleHRAdmin || role == RoleSuperAdmin
}

func IsValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleManager, RoleHRAdmin, RoleSuperAdmin:
		return true
	}
	return false
}
