// internal/app/store/companies/companystore.go
package companystore

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
	return &Store{c: db.Collection("companies")}
}

func (s *Store) Create(ctx context.Context, c models.Company) (models.Company, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Company{}, err
	}
	return c, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Company, error) {
	var c models.Company
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Company{}, err
	}
	return c, nil
}

// Exists reports whether a company with id exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

// Find returns companies matching filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Company, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Company{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByOwner returns the companies whose owner is userID.
func (s *Store) FindByOwner(ctx context.Context, userID models.UserID) ([]models.Company, error) {
	return s.Find(ctx, bson.M{"user_id": string(userID)}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// Count returns the number of companies matching filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Update applies the non-nil fields of p and returns the updated company.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.CompanyPatch) (models.Company, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Name != nil {
		set["company_name"] = *p.Name
	}
	if p.Description != nil {
		set["company_description"] = *p.Description
	}
	if p.UserID != nil {
		set["user_id"] = string(*p.UserID)
	}
	if p.ISOID != nil {
		set["iso_id"] = string(*p.ISOID)
	}
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}

	var c models.Company
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&c)
	if err != nil {
		return models.Company{}, err
	}
	return c, nil
}

// Delete removes a company by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
