// internal/app/store/isostandards/isostore.go
package isostore

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
	return &Store{c: db.Collection("iso")}
}

func (s *Store) Create(ctx context.Context, iso models.ISOStandard) (models.ISOStandard, error) {
	now := time.Now().UTC()
	iso.ID = primitive.NewObjectID()
	iso.CreatedAt = now
	iso.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, iso); err != nil {
		return models.ISOStandard{}, err
	}
	return iso, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ISOStandard, error) {
	var iso models.ISOStandard
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&iso); err != nil {
		return models.ISOStandard{}, err
	}
	return iso, nil
}

// GetByName returns the standard with exactly name.
func (s *Store) GetByName(ctx context.Context, name string) (models.ISOStandard, error) {
	var iso models.ISOStandard
	if err := s.c.FindOne(ctx, bson.M{"iso_name": name}).Decode(&iso); err != nil {
		return models.ISOStandard{}, err
	}
	return iso, nil
}

// Exists reports whether a standard with id exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

// Find returns standards matching filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.ISOStandard, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.ISOStandard{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByControl returns the standards referencing controlID.
func (s *Store) FindByControl(ctx context.Context, controlID models.ControlID) ([]models.ISOStandard, error) {
	return s.Find(ctx, bson.M{"control_id": string(controlID)}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// ListActive returns every active standard.
func (s *Store) ListActive(ctx context.Context) ([]models.ISOStandard, error) {
	return s.Find(ctx, bson.M{"is_active": true}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// Count returns the number of standards matching filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Update applies the non-nil fields of p and returns the updated standard.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.ISOStandardPatch) (models.ISOStandard, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Name != nil {
		set["iso_name"] = *p.Name
	}
	if p.Description != nil {
		set["iso_description"] = *p.Description
	}
	if p.ControlID != nil {
		set["control_id"] = string(*p.ControlID)
	}
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}

	var iso models.ISOStandard
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&iso)
	if err != nil {
		return models.ISOStandard{}, err
	}
	return iso, nil
}

// Delete removes a standard by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
