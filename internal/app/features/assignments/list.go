// internal/app/features/assignments/list.go
package assignments

import (
	"context"
	"net/http"

	assignmentstore "github.com/dalemusser/valids/internal/app/store/assignments"
	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/authz"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ServeList handles GET /assignments?user_id&skip&limit. Auditors only see
// assignments of users in their company.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)
	page, ok := formutil.Page(w, r)
	if !ok {
		return
	}

	filter := bson.M{}
	if raw := query.Get(r, "user_id"); raw != "" {
		uid, ok := formutil.RefID(w, raw, "user")
		if !ok {
			return
		}
		filter["user_id"] = uid.Hex()
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !authz.IsSuperAdmin(cur) {
		own := cur.CompanyRef()
		if own == "" {
			respond.OK(w, []models.QuestionAssignment{})
			return
		}
		members, err := userstore.New(h.DB).Find(ctx, bson.M{"company_id": string(own)})
		if err != nil {
			h.Log.Error("assignments: company members failed", zap.Error(err))
			respond.Internal(w)
			return
		}
		ids := make([]string, len(members))
		for i, u := range members {
			ids[i] = u.ID.Hex()
		}
		if uid, set := filter["user_id"]; set {
			filter["$and"] = bson.A{bson.M{"user_id": uid}, bson.M{"user_id": bson.M{"$in": ids}}}
			delete(filter, "user_id")
		} else {
			filter["user_id"] = bson.M{"$in": ids}
		}
	}

	list, err := assignmentstore.New(h.DB).Find(ctx, filter, page.FindOptions())
	if err != nil {
		h.Log.Error("assignments: list failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}

// ServeView handles GET /assignments/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, ok := h.loadAccessible(ctx, w, r, cur)
	if !ok {
		return
	}
	respond.OK(w, a)
}
