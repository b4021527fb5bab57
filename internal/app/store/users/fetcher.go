package userstore

import (
	"context"
	"errors"

	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// FetchUser loads the user named by a token subject. It implements
// auth.UserFetcher: (nil, nil) means the id is malformed or unknown.
func (s *Store) FetchUser(ctx context.Context, userID string) (*models.User, error) {
	oid, err := models.ParseObjectID(userID)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	u, err := s.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
