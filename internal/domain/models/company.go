// internal/domain/models/company.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company is a tenant assessed against one ISO standard.
type Company struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"company_name" json:"company_name"`
	Description *string            `bson:"company_description" json:"company_description"`
	UserID      UserID             `bson:"user_id" json:"user_id"` // owner
	ISOID       ISOID              `bson:"iso_id" json:"iso_id"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// CompanyPatch carries the optional fields of a company update.
type CompanyPatch struct {
	Name        *string
	Description *string
	UserID      *UserID
	ISOID       *ISOID
	IsActive    *bool
}

func (p CompanyPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.UserID == nil && p.ISOID == nil && p.IsActive == nil
}
