package domain

import "slices"

// Role represents a user role in the system
type Role string

const (
	// RoleAdmin has full access and can manage leases, units, and system settings
	RoleAdmin Role = "admin"

	// RoleAgent can propose rate changes and view lease data
	RoleAgent Role = "agent"

	// RoleReviewer acts on the recommending gate of rate change requests
	RoleReviewer Role = "reviewer"

	// RoleApprover acts on the final gate and makes rate changes take effect
	RoleApprover Role = "approver"
)

// ValidRoles contains all valid roles in the system
var ValidRoles = []Role{RoleAdmin, RoleAgent, RoleReviewer, RoleApprover}

// IsValidRole checks if a given role is valid
func IsValidRole(role string) bool {
	return slices.Contains(ValidRoles, Role(role))
}

// HasRole checks if a slice of roles contains a specific role
func HasRole(roles []string, role Role) bool {
	return slices.Contains(roles, string(role))
}

// HasAnyRole checks if a slice of roles contains any of the specified roles
func HasAnyRole(roles []string, requiredRoles ...Role) bool {
	for _, required := range requiredRoles {
		if HasRole(roles, required) {
			return true
		}
	}
	return false
}
