// internal/domain/models/isostandard.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ISOStandard is a compliance framework (e.g. ISO 27001) linked to a control.
type ISOStandard struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"iso_name" json:"iso_name"`
	Description *string            `bson:"iso_description" json:"iso_description"`
	ControlID   ControlID          `bson:"control_id" json:"control_id"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type ISOStandardPatch struct {
	Name        *string
	Description *string
	ControlID   *ControlID
	IsActive    *bool
}

func (p ISOStandardPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.ControlID == nil && p.IsActive == nil
}
