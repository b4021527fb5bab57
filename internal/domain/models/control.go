// internal/domain/models/control.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Control is a compliance requirement answered through one question.
type Control struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"control_name" json:"control_name"`
	Key        string             `bson:"control_key" json:"control_key"` // e.g. "AC-01"
	QuestionID QuestionID         `bson:"question_id" json:"question_id"`
	IsActive   bool               `bson:"is_active" json:"is_active"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

type ControlPatch struct {
	Name       *string
	Key        *string
	QuestionID *QuestionID
	IsActive   *bool
}

func (p ControlPatch) Empty() bool {
	return p.Name == nil && p.Key == nil && p.QuestionID == nil && p.IsActive == nil
}
