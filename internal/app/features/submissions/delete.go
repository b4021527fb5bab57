// internal/app/features/submissions/delete.go
package submissions

import (
	"context"
	"net/http"

	submissionstore "github.com/dalemusser/valids/internal/app/store/submissions"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /submissions/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sub, ok := h.loadAccessible(ctx, w, r, cur)
	if !ok {
		return
	}

	n, err := submissionstore.New(h.DB).Delete(ctx, sub.ID)
	if err != nil {
		h.Log.Error("submissions: delete failed", zap.String("submission_id", sub.ID.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	if n == 0 {
		respond.NotFound(w, "Submission not found")
		return
	}

	h.AuditLog.SubmissionDeleted(ctx, r, cur, sub)
	w.WriteHeader(http.StatusNoContent)
}
