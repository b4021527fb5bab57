// internal/domain/models/ids.go
package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entity identifiers are stored as 24-hex strings in referencing documents.
// MongoDB does not enforce these references; handlers check existence
// before every write that introduces one.
type (
	UserID       string
	CompanyID    string
	ISOID        string
	ControlID    string
	QuestionID   string
	FieldID      string
	SubmissionID string
	AssignmentID string
)

// ParseObjectID trims s and parses it as a Mongo ObjectID.
func ParseObjectID(s string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(strings.TrimSpace(s))
}

// ValidID reports whether s is a well-formed ObjectID hex string.
func ValidID(s string) bool {
	_, err := ParseObjectID(s)
	return err == nil
}

func (id UserID) ObjectID() (primitive.ObjectID, error)       { return ParseObjectID(string(id)) }
func (id CompanyID) ObjectID() (primitive.ObjectID, error)    { return ParseObjectID(string(id)) }
func (id ISOID) ObjectID() (primitive.ObjectID, error)        { return ParseObjectID(string(id)) }
func (id ControlID) ObjectID() (primitive.ObjectID, error)    { return ParseObjectID(string(id)) }
func (id QuestionID) ObjectID() (primitive.ObjectID, error)   { return ParseObjectID(string(id)) }
func (id FieldID) ObjectID() (primitive.ObjectID, error)      { return ParseObjectID(string(id)) }
func (id SubmissionID) ObjectID() (primitive.ObjectID, error) { return ParseObjectID(string(id)) }
func (id AssignmentID) ObjectID() (primitive.ObjectID, error) { return ParseObjectID(string(id)) }
