// internal/app/store/assignments/assignmentstore.go
package assignmentstore

import (
	"context"
	"time"

	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("question_assignments")}
}

// Create inserts an active assignment stamped with the current time.
func (s *Store) Create(ctx context.Context, a models.QuestionAssignment) (models.QuestionAssignment, error) {
	a.ID = primitive.NewObjectID()
	a.AssignedAt = time.Now().UTC()
	a.IsActive = true
	a.UpdatedAt = nil
	if a.QuestionIDs == nil {
		a.QuestionIDs = []models.QuestionID{}
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.QuestionAssignment{}, err
	}
	return a, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.QuestionAssignment, error) {
	var a models.QuestionAssignment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.QuestionAssignment{}, err
	}
	return a, nil
}

// Find returns assignments matching filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.QuestionAssignment, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.QuestionAssignment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveForUser returns userID's active assignments, oldest first.
func (s *Store) ActiveForUser(ctx context.Context, userID models.UserID) ([]models.QuestionAssignment, error) {
	return s.Find(ctx, bson.M{"user_id": string(userID), "is_active": true},
		options.Find().SetSort(bson.D{{Key: "assigned_at", Value: 1}, {Key: "_id", Value: 1}}))
}

// Update applies the non-nil fields of p and returns the updated assignment.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.QuestionAssignmentPatch) (models.QuestionAssignment, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.QuestionIDs != nil {
		ids := *p.QuestionIDs
		if ids == nil {
			ids = []models.QuestionID{}
		}
		set["question_ids"] = ids
	}
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}

	var a models.QuestionAssignment
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&a)
	if err != nil {
		return models.QuestionAssignment{}, err
	}
	return a, nil
}

// Delete removes an assignment by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
