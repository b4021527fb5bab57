// internal/app/features/companies/edit.go
package companies

import (
	"context"
	"errors"
	"net/http"

	companystore "github.com/dalemusser/valids/internal/app/store/companies"
	isostore "github.com/dalemusser/valids/internal/app/store/isostandards"
	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/htmlsanitize"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleEdit handles PUT /companies/{id}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.PathID(w, r, "id", "company")
	if !ok {
		return
	}

	var in editCompanyInput
	if !formutil.Bind(w, r, &in) {
		return
	}

	p := models.CompanyPatch{
		Name:        formutil.Trim(in.Name),
		Description: htmlsanitize.SanitizePtr(in.Description),
		IsActive:    in.IsActive,
	}
	if p.Name != nil && *p.Name == "" {
		respond.BadRequest(w, "Company name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if in.UserID != nil {
		oid, _ := models.ParseObjectID(*in.UserID)
		if !formutil.RequireRef(ctx, w, h.Log, userstore.New(h.DB).Exists, oid, "User not found") {
			return
		}
		ref := models.UserID(oid.Hex())
		p.UserID = &ref
	}
	if in.ISOID != nil {
		oid, _ := models.ParseObjectID(*in.ISOID)
		if !formutil.RequireRef(ctx, w, h.Log, isostore.New(h.DB).Exists, oid, "ISO not found") {
			return
		}
		ref := models.ISOID(oid.Hex())
		p.ISOID = &ref
	}
	if p.Empty() {
		respond.BadRequest(w, "No fields to update")
		return
	}

	updated, err := companystore.New(h.DB).Update(ctx, id, p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "Company not found")
		return
	}
	if err != nil {
		h.Log.Error("companies: update failed", zap.String("company_id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, updated)
}
