// internal/app/features/companies/delete.go
package companies

import (
	"context"
	"net/http"

	companystore "github.com/dalemusser/valids/internal/app/store/companies"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /companies/{id}. Users and submissions that
// reference the company are left in place.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id, ok := formutil.PathID(w, r, "id", "company")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := companystore.New(h.DB).Delete(ctx, id)
	if err != nil {
		h.Log.Error("companies: delete failed", zap.String("company_id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	if n == 0 {
		respond.NotFound(w, "Company not found")
		return
	}

	h.AuditLog.CompanyDeleted(ctx, r, actor, id.Hex())
	w.WriteHeader(http.StatusNoContent)
}
