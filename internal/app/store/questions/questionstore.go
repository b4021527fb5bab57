// internal/app/store/questions/questionstore.go
package questionstore

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
	return &Store{c: db.Collection("questions")}
}

func (s *Store) Create(ctx context.Context, q models.Question) (models.Question, error) {
	now := time.Now().UTC()
	q.ID = primitive.NewObjectID()
	q.CreatedAt = now
	q.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, q); err != nil {
		return models.Question{}, err
	}
	return q, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Question, error) {
	var q models.Question
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		return models.Question{}, err
	}
	return q, nil
}

// Exists reports whether a question with id exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

// FirstMissing returns the first of ids (in order) with no stored question.
// ok is false when every id exists.
func (s *Store) FirstMissing(ctx context.Context, ids []primitive.ObjectID) (missing primitive.ObjectID, ok bool, err error) {
	if len(ids) == 0 {
		return primitive.NilObjectID, false, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	defer cur.Close(ctx)

	found := make(map[primitive.ObjectID]struct{}, len(ids))
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return primitive.NilObjectID, false, err
		}
		found[row.ID] = struct{}{}
	}
	if err := cur.Err(); err != nil {
		return primitive.NilObjectID, false, err
	}
	for _, id := range ids {
		if _, has := found[id]; !has {
			return id, true, nil
		}
	}
	return primitive.NilObjectID, false, nil
}

// Find returns questions matching filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Question, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Question{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByField returns the questions referencing fieldID.
func (s *Store) FindByField(ctx context.Context, fieldID models.FieldID) ([]models.Question, error) {
	return s.Find(ctx, bson.M{"fields_id": string(fieldID)}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// FindActive returns active questions. A non-nil ids restricts the result to
// those ids; an empty non-nil slice yields no questions.
func (s *Store) FindActive(ctx context.Context, ids []primitive.ObjectID) ([]models.Question, error) {
	filter := bson.M{"is_active": true}
	if ids != nil {
		if len(ids) == 0 {
			return []models.Question{}, nil
		}
		filter["_id"] = bson.M{"$in": ids}
	}
	return s.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// Update applies the non-nil fields of p and returns the updated question.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.QuestionPatch) (models.Question, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.FieldID != nil {
		set["fields_id"] = string(*p.FieldID)
	}
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}

	var q models.Question
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&q)
	if err != nil {
		return models.Question{}, err
	}
	return q, nil
}

// Delete removes a question by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
