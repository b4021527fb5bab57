// internal/app/features/companies/list.go
package companies

import (
	"context"
	"errors"
	"net/http"

	companystore "github.com/dalemusser/valids/internal/app/store/companies"
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

// ServeList handles GET /companies?skip&limit. Superadmins see every
// company; everyone else sees at most their own.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)
	page, ok := formutil.Page(w, r)
	if !ok {
		return
	}

	filter := bson.M{}
	if !authz.IsSuperAdmin(cur) {
		own, err := cur.CompanyRef().ObjectID()
		if err != nil {
			respond.OK(w, []models.Company{})
			return
		}
		filter["_id"] = own
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := companystore.New(h.DB).Find(ctx, filter, page.FindOptions())
	if err != nil {
		h.Log.Error("companies: list failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}

// ServeView handles GET /companies/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)
	id, ok := formutil.PathID(w, r, "id", "company")
	if !ok {
		return
	}
	if !authz.CanAccessCompany(cur, models.CompanyID(id.Hex())) {
		respond.Forbidden(w, "Access denied to this company")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := companystore.New(h.DB).GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "Company not found")
		return
	}
	if err != nil {
		h.Log.Error("companies: get failed", zap.String("company_id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, c)
}

// ServeByOwner handles GET /companies/user/{user_id}: the companies owned by
// a user, limited to those the caller may access.
func (h *Handler) ServeByOwner(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)
	uid, ok := formutil.PathID(w, r, "user_id", "user")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	owned, err := companystore.New(h.DB).FindByOwner(ctx, models.UserID(uid.Hex()))
	if err != nil {
		h.Log.Error("companies: list by owner failed", zap.String("user_id", uid.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}

	visible := make([]models.Company, 0, len(owned))
	for _, c := range owned {
		if authz.CanAccessCompany(cur, models.CompanyID(c.ID.Hex())) {
			visible = append(visible, c)
		}
	}
	respond.OK(w, visible)
}
