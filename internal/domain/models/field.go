// internal/domain/models/field.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Common field type tags. The set is open; any tag up to 50 chars is stored.
const (
	FieldTypeText     = "text"
	FieldTypeNumber   = "number"
	FieldTypeBoolean  = "boolean"
	FieldTypeSelect   = "select"
	FieldTypeRadio    = "radio"
	FieldTypeCheckbox = "checkbox"
	FieldTypeDate     = "date"
	FieldTypeTextarea = "textarea"
)

// Field defines the answer type of a question.
type Field struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"field_name" json:"field_name"`
	Type       string             `bson:"fieldType" json:"fieldType"`
	IsRequired bool               `bson:"isRequired" json:"isRequired"`
	Options    []string           `bson:"options" json:"options"`
	IsActive   bool               `bson:"is_active" json:"is_active"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

type FieldPatch struct {
	Name       *string
	Type       *string
	IsRequired *bool
	Options    *[]string
	IsActive   *bool
}

func (p FieldPatch) Empty() bool {
	return p.Name == nil && p.Type == nil && p.IsRequired == nil && p.Options == nil && p.IsActive == nil
}
