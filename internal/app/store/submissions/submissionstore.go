// internal/app/store/submissions/submissionstore.go
package submissionstore

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
	return &Store{c: db.Collection("submissions")}
}

// Create inserts sub. An empty status becomes draft and a nil data map is
// stored as an empty document; neither lifecycle stamp is set.
func (s *Store) Create(ctx context.Context, sub models.Submission) (models.Submission, error) {
	now := time.Now().UTC()
	sub.ID = primitive.NewObjectID()
	if sub.Status == "" {
		sub.Status = models.StatusDraft
	}
	if sub.Data == nil {
		sub.Data = map[string]any{}
	}
	sub.SubmittedAt = nil
	sub.ReviewedAt = nil
	sub.CreatedAt = now
	sub.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		return models.Submission{}, err
	}
	return sub, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Submission, error) {
	var sub models.Submission
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sub); err != nil {
		return models.Submission{}, err
	}
	return sub, nil
}

// Find returns submissions matching filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Submission, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Submission{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByCompany returns every submission for companyID.
func (s *Store) FindByCompany(ctx context.Context, companyID models.CompanyID) ([]models.Submission, error) {
	return s.Find(ctx, bson.M{"company_id": string(companyID)}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// Count returns the number of submissions matching filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Update applies the non-nil fields of p, including the lifecycle stamps,
// and returns the updated submission.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.SubmissionPatch) (models.Submission, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.Data != nil {
		set["submission_data"] = p.Data
	}
	if p.ReviewerNotes != nil {
		set["reviewer_notes"] = *p.ReviewerNotes
	}
	if p.ProgressPercentage != nil {
		set["progress_percentage"] = *p.ProgressPercentage
	}
	if p.SubmittedAt != nil {
		set["submitted_at"] = p.SubmittedAt.UTC()
	}
	if p.ReviewedAt != nil {
		set["reviewed_at"] = p.ReviewedAt.UTC()
	}

	var sub models.Submission
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&sub)
	if err != nil {
		return models.Submission{}, err
	}
	return sub, nil
}

// Delete removes a submission by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
