// Package authz holds the cross-company access rule and role predicates.
package authz

import (
	"github.com/dalemusser/valids/internal/domain/models"
)

// CanAccessCompany reports whether u may act on data belonging to companyID.
// Superadmins may access every company; everyone else only their own.
// A user without a company reference can access no company.
func CanAccessCompany(u *models.User, companyID models.CompanyID) bool {
	if u == nil {
		return false
	}
	if u.Role == models.RoleSuperAdmin {
		return true
	}
	own := u.CompanyRef()
	return own != "" && own == companyID
}

// IsSuperAdmin reports whether u is a superadmin.
func IsSuperAdmin(u *models.User) bool {
	return u != nil && u.Role == models.RoleSuperAdmin
}

// IsAuditorOrAbove reports whether u is a superadmin or auditor.
func IsAuditorOrAbove(u *models.User) bool {
	return u != nil && (u.Role == models.RoleSuperAdmin || u.Role == models.RoleAuditor)
}

// IsEmployee reports whether u has the employee role.
func IsEmployee(u *models.User) bool {
	return u != nil && u.Role == models.RoleEmployee
}

// CanAccessUser reports whether u may read or act on target's data: the
// user themselves, or anyone passing CanAccessCompany for target's company.
func CanAccessUser(u, target *models.User) bool {
	if u == nil || target == nil {
		return false
	}
	if u.ID == target.ID {
		return true
	}
	return CanAccessCompany(u, target.CompanyRef())
}
