// internal/app/store/fields/fieldstore.go
package fieldstore

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
	return &Store{c: db.Collection("fields")}
}

// Create inserts f. A nil Options slice is stored as an empty array.
func (s *Store) Create(ctx context.Context, f models.Field) (models.Field, error) {
	now := time.Now().UTC()
	f.ID = primitive.NewObjectID()
	if f.Options == nil {
		f.Options = []string{}
	}
	f.CreatedAt = now
	f.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.Field{}, err
	}
	return f, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Field, error) {
	var f models.Field
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		return models.Field{}, err
	}
	return f, nil
}

// Exists reports whether a field with id exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

// Find returns fields matching filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Field, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Field{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByType returns the fields whose type tag is fieldType.
func (s *Store) FindByType(ctx context.Context, fieldType string) ([]models.Field, error) {
	return s.Find(ctx, bson.M{"fieldType": fieldType}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// Update applies the non-nil fields of p and returns the updated field.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.FieldPatch) (models.Field, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Name != nil {
		set["field_name"] = *p.Name
	}
	if p.Type != nil {
		set["fieldType"] = *p.Type
	}
	if p.IsRequired != nil {
		set["isRequired"] = *p.IsRequired
	}
	if p.Options != nil {
		opts := *p.Options
		if opts == nil {
			opts = []string{}
		}
		set["options"] = opts
	}
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}

	var f models.Field
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&f)
	if err != nil {
		return models.Field{}, err
	}
	return f, nil
}

// Delete removes a field by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
