// internal/app/features/submissions/list.go
package submissions

import (
	"context"
	"net/http"

	submissionstore "github.com/dalemusser/valids/internal/app/store/submissions"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/inputval"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type listFilter struct {
	CompanyID string `validate:"omitempty,objectid" label:"company ID"`
	Status    string `validate:"omitempty,submissionstatus" label:"status"`
}

// ServeList handles GET /submissions?company_id&status&skip&limit.
//
// Superadmins see everything (optionally one company); auditors and
// spectators see their company; employees see only their own submissions.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)
	page, ok := formutil.Page(w, r)
	if !ok {
		return
	}

	in := listFilter{
		CompanyID: query.Get(r, "company_id"),
		Status:    query.Get(r, "status"),
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.BadRequest(w, res.First())
		return
	}

	filter := bson.M{}
	switch cur.Role {
	case models.RoleSuperAdmin:
		if in.CompanyID != "" {
			cid, _ := models.ParseObjectID(in.CompanyID)
			filter["company_id"] = cid.Hex()
		}
	case models.RoleAuditor, models.RoleSpectator:
		own := cur.CompanyRef()
		if own == "" {
			respond.Forbidden(w, "User not associated with any company")
			return
		}
		filter["company_id"] = string(own)
	default:
		filter["user_id"] = cur.ID.Hex()
	}
	if in.Status != "" {
		filter["status"] = in.Status
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := submissionstore.New(h.DB).Find(ctx, filter, page.FindOptions())
	if err != nil {
		h.Log.Error("submissions: list failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}

// ServeView handles GET /submissions/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sub, ok := h.loadAccessible(ctx, w, r, cur)
	if !ok {
		return
	}
	respond.OK(w, sub)
}
