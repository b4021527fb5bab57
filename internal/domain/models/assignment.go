// internal/domain/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionAssignment records which questions an auditor assigned to a user.
type QuestionAssignment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      UserID             `bson:"user_id" json:"user_id"`
	QuestionIDs []QuestionID       `bson:"question_ids" json:"question_ids"`
	AssignedBy  UserID             `bson:"assigned_by" json:"assigned_by"`
	AssignedAt  time.Time          `bson:"assigned_at" json:"assigned_at"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	UpdatedAt   *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type QuestionAssignmentPatch struct {
	QuestionIDs *[]QuestionID
	IsActive    *bool
}

func (p QuestionAssignmentPatch) Empty() bool {
	return p.QuestionIDs == nil && p.IsActive == nil
}
