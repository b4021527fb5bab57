// internal/app/features/admin/status.go
package admin

import (
	"context"
	"net/http"

	companystore "github.com/dalemusser/valids/internal/app/store/companies"
	isostore "github.com/dalemusser/valids/internal/app/store/isostandards"
	submissionstore "github.com/dalemusser/valids/internal/app/store/submissions"
	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ServeSystemStatus handles GET /admin/system-status.
func (h *Handler) ServeSystemStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	counts, err := userstore.New(h.DB).CountActiveByRole(ctx)
	if err != nil {
		h.Log.Error("admin: role counts failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	companies, err := companystore.New(h.DB).Count(ctx, bson.M{"is_active": true})
	if err != nil {
		h.Log.Error("admin: company count failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	isos, err := isostore.New(h.DB).Count(ctx, bson.M{"is_active": true})
	if err != nil {
		h.Log.Error("admin: iso count failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	subs, err := submissionstore.New(h.DB).Count(ctx, bson.M{})
	if err != nil {
		h.Log.Error("admin: submission count failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	var total int64
	for _, n := range counts {
		total += n
	}
	respond.OK(w, systemStatus{
		SystemStatus:    "operational",
		UserCounts:      counts,
		CompanyCount:    companies,
		ISOCount:        isos,
		SubmissionCount: subs,
		TotalUsers:      total,
	})
}
