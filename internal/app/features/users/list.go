// internal/app/features/users/list.go
package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/authz"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeList handles GET /users?skip&limit. Non-superadmins only see users
// of their own company.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)
	page, ok := formutil.Page(w, r)
	if !ok {
		return
	}

	filter := bson.M{}
	if !authz.IsSuperAdmin(cur) {
		own := cur.CompanyRef()
		if own == "" {
			respond.OK(w, []models.User{})
			return
		}
		filter["company_id"] = string(own)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := userstore.New(h.DB).Find(ctx, filter, page.FindOptions())
	if err != nil {
		h.Log.Error("users: list failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}

// ServeView handles GET /users/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)
	id, ok := formutil.PathID(w, r, "id", "user")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("users: get failed", zap.String("user_id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	if !authz.CanAccessUser(cur, &u) {
		respond.Forbidden(w, "Access denied to this user's data")
		return
	}
	respond.OK(w, u)
}
