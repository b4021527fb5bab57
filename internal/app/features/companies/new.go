// internal/app/features/companies/new.go
package companies

import (
	"context"
	"net/http"
	"strings"

	companystore "github.com/dalemusser/valids/internal/app/store/companies"
	isostore "github.com/dalemusser/valids/internal/app/store/isostandards"
	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/htmlsanitize"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /companies. The owner user and the ISO standard
// must both exist.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)

	var in createCompanyInput
	if !formutil.Bind(w, r, &in) {
		return
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		respond.BadRequest(w, "Company name is required")
		return
	}

	ownerID, _ := models.ParseObjectID(in.UserID)
	isoID, _ := models.ParseObjectID(in.ISOID)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !formutil.RequireRef(ctx, w, h.Log, userstore.New(h.DB).Exists, ownerID, "User not found") {
		return
	}
	if !formutil.RequireRef(ctx, w, h.Log, isostore.New(h.DB).Exists, isoID, "ISO not found") {
		return
	}

	created, err := companystore.New(h.DB).Create(ctx, models.Company{
		Name:        name,
		Description: htmlsanitize.SanitizePtr(in.Description),
		UserID:      models.UserID(ownerID.Hex()),
		ISOID:       models.ISOID(isoID.Hex()),
		IsActive:    in.IsActive == nil || *in.IsActive,
	})
	if err != nil {
		h.Log.Error("companies: create failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	h.AuditLog.CompanyCreated(ctx, r, actor, created)
	respond.JSON(w, http.StatusCreated, created)
}
