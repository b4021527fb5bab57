// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/valids/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateUser is returned when the username or email is already taken.
var ErrDuplicateUser = errors.New("username or email already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create inserts u with a new id and fresh timestamps. Username and email
// are trimmed; email is lowercased.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.CreatedAt = now
	u.UpdatedAt = now

	taken, err := s.ExistsByUsernameOrEmail(ctx, u.Username, u.Email, primitive.NilObjectID)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrDuplicateUser
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByLogin finds a user whose username matches login exactly or whose
// email matches it case-insensitively.
func (s *Store) GetByLogin(ctx context.Context, login string) (models.User, error) {
	login = strings.TrimSpace(login)
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"$or": []bson.M{
		{"username": login},
		{"email": strings.ToLower(login)},
	}}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Exists reports whether a user with id exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

// ExistsByUsernameOrEmail reports whether another user (not excludeID) already
// uses username or email. Empty arguments are not matched.
func (s *Store) ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID primitive.ObjectID) (bool, error) {
	var or []bson.M
	if username != "" {
		or = append(or, bson.M{"username": username})
	}
	if email != "" {
		or = append(or, bson.M{"email": strings.ToLower(email)})
	}
	if len(or) == 0 {
		return false, nil
	}
	filter := bson.M{"$or": or}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	n, err := s.c.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return n > 0, err
}

// ExistsWithRole reports whether any user has role.
func (s *Store) ExistsWithRole(ctx context.Context, role string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"roletype": role}, options.Count().SetLimit(1))
	return n > 0, err
}

// Find returns users matching filter. The caller supplies paging and sorting.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.User, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListActiveByCompany returns the active users referencing companyID.
func (s *Store) ListActiveByCompany(ctx context.Context, companyID models.CompanyID) ([]models.User, error) {
	return s.Find(ctx, bson.M{"company_id": string(companyID), "is_active": true},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// ListActiveByRole returns the active users with role.
func (s *Store) ListActiveByRole(ctx context.Context, role string) ([]models.User, error) {
	return s.Find(ctx, bson.M{"roletype": role, "is_active": true},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// Count returns the number of users matching filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// CountActiveByRole returns active user counts keyed by role. Every known
// role is present, with 0 when no active user holds it.
func (s *Store) CountActiveByRole(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(models.AllRoles))
	for _, r := range models.AllRoles {
		out[r] = 0
	}

	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_active": true}}},
		{{Key: "$group", Value: bson.M{"_id": "$roletype", "n": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			Role string `bson:"_id"`
			N    int64  `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		if _, known := out[row.Role]; known {
			out[row.Role] = row.N
		}
	}
	return out, cur.Err()
}

// Update applies the non-nil fields of p, stamps updated_at and returns the
// updated user. A missing user yields mongo.ErrNoDocuments.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.UserPatch) (models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Username != nil {
		set["username"] = strings.TrimSpace(*p.Username)
	}
	if p.Email != nil {
		set["email"] = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.Role != nil {
		set["roletype"] = *p.Role
	}
	if p.Password != nil {
		set["password"] = *p.Password
	}
	if p.CompanyID != nil {
		set["company_id"] = string(*p.CompanyID)
	}
	if p.ExperienceYears != nil {
		set["experience_years"] = *p.ExperienceYears
	}
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, err
	}
	return u, nil
}

// SetPassword replaces the stored hash.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password":   hash,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a user by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
