// internal/app/features/assignments/company.go
package assignments

import (
	"context"
	"errors"
	"net/http"

	companystore "github.com/dalemusser/valids/internal/app/store/companies"
	controlstore "github.com/dalemusser/valids/internal/app/store/controls"
	isostore "github.com/dalemusser/valids/internal/app/store/isostandards"
	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/authz"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// companyParam parses {company_id} and applies the company access rule.
func companyParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	cur, _ := auth.CurrentUser(r)
	cid, ok := formutil.PathID(w, r, "company_id", "company")
	if !ok {
		return primitive.NilObjectID, false
	}
	if !authz.CanAccessCompany(cur, models.CompanyID(cid.Hex())) {
		respond.Forbidden(w, "Access denied to this company")
		return primitive.NilObjectID, false
	}
	return cid, true
}

// ServeCompanyControls handles GET /assignments/controls/company/{company_id}:
// the active control of the company's ISO standard, when that standard is active.
func (h *Handler) ServeCompanyControls(w http.ResponseWriter, r *http.Request) {
	cid, ok := companyParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	company, err := companystore.New(h.DB).GetByID(ctx, cid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "Company not found")
		return
	}
	if err != nil {
		h.Log.Error("assignments: company lookup failed", zap.String("company_id", cid.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}

	var controlIDs []primitive.ObjectID
	if isoID, err := company.ISOID.ObjectID(); err == nil {
		iso, err := isostore.New(h.DB).GetByID(ctx, isoID)
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
		case err != nil:
			h.Log.Error("assignments: iso lookup failed", zap.String("iso_id", isoID.Hex()), zap.Error(err))
			respond.Internal(w)
			return
		case iso.IsActive:
			if id, err := iso.ControlID.ObjectID(); err == nil {
				controlIDs = append(controlIDs, id)
			}
		}
	}
	if len(controlIDs) == 0 {
		respond.OK(w, []models.Control{})
		return
	}

	list, err := controlstore.New(h.DB).FindActiveByIDs(ctx, controlIDs)
	if err != nil {
		h.Log.Error("assignments: control list failed", zap.String("company_id", cid.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}

// ServeCompanyUsers handles GET /assignments/users/company/{company_id}: the
// company's active users, candidates for assignment.
func (h *Handler) ServeCompanyUsers(w http.ResponseWriter, r *http.Request) {
	cid, ok := companyParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := userstore.New(h.DB).ListActiveByCompany(ctx, models.CompanyID(cid.Hex()))
	if err != nil {
		h.Log.Error("assignments: company users failed", zap.String("company_id", cid.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}
