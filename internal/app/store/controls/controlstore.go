// internal/app/store/controls/controlstore.go
package controlstore

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
	return &Store{c: db.Collection("controls")}
}

func (s *Store) Create(ctx context.Context, c models.Control) (models.Control, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Control{}, err
	}
	return c, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Control, error) {
	var c models.Control
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Control{}, err
	}
	return c, nil
}

// Exists reports whether a control with id exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

// Find returns controls matching filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Control, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Control{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByQuestion returns the controls referencing questionID.
func (s *Store) FindByQuestion(ctx context.Context, questionID models.QuestionID) ([]models.Control, error) {
	return s.Find(ctx, bson.M{"question_id": string(questionID)}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// FindActiveByIDs returns the active controls among ids.
func (s *Store) FindActiveByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Control, error) {
	if len(ids) == 0 {
		return []models.Control{}, nil
	}
	return s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "is_active": true},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// Update applies the non-nil fields of p and returns the updated control.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.ControlPatch) (models.Control, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Name != nil {
		set["control_name"] = *p.Name
	}
	if p.Key != nil {
		set["control_key"] = *p.Key
	}
	if p.QuestionID != nil {
		set["question_id"] = string(*p.QuestionID)
	}
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}

	var c models.Control
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&c)
	if err != nil {
		return models.Control{}, err
	}
	return c, nil
}

// Delete removes a control by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
