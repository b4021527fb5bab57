// internal/domain/models/question.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is a prompt presented to employees; FieldID names its answer shape.
type Question struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Description string             `bson:"description" json:"description"`
	FieldID     FieldID            `bson:"fields_id" json:"fields_id"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type QuestionPatch struct {
	Description *string
	FieldID     *FieldID
	IsActive    *bool
}

func (p QuestionPatch) Empty() bool {
	return p.Description == nil && p.FieldID == nil && p.IsActive == nil
}
