// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values stored in users.roletype.
const (
	RoleSuperAdmin = "superadmin"
	RoleAuditor    = "auditor"
	RoleSpectator  = "spectator"
	RoleEmployee   = "employee"
)

// AllRoles lists every valid role in descending privilege order.
var AllRoles = []string{RoleSuperAdmin, RoleAuditor, RoleSpectator, RoleEmployee}

// IsValidRole reports whether role is one of AllRoles.
func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents superadmins, auditors, spectators and employees.
//
// Password holds the stored digest and is never serialized to JSON.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username        string             `bson:"username" json:"username"`
	Email           string             `bson:"email" json:"email"`
	Role            string             `bson:"roletype" json:"roletype"`
	Password        string             `bson:"password" json:"-"`
	CompanyID       *CompanyID         `bson:"company_id" json:"company_id"`
	ExperienceYears *int               `bson:"experience_years" json:"experience_years"`
	IsActive        bool               `bson:"is_active" json:"is_active"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// UserID returns the typed identifier for u.
func (u User) UserID() UserID { return UserID(u.ID.Hex()) }

// CompanyRef returns the user's company reference or "" when unset.
func (u User) CompanyRef() CompanyID {
	if u.CompanyID == nil {
		return ""
	}
	return *u.CompanyID
}

// UserPatch carries the optional fields of a user update.
// A nil pointer means the field was not supplied.
type UserPatch struct {
	Username        *string
	Email           *string
	Role            *string
	Password        *string // already hashed by the caller
	CompanyID       *CompanyID
	ExperienceYears *int
	IsActive        *bool
}

// Empty reports whether no field was supplied.
func (p UserPatch) Empty() bool {
	return p.Username == nil && p.Email == nil && p.Role == nil && p.Password == nil &&
		p.CompanyID == nil && p.ExperienceYears == nil && p.IsActive == nil
}
