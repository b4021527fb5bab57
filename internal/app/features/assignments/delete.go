// internal/app/features/assignments/delete.go
package assignments

import (
	"context"
	"net/http"

	assignmentstore "github.com/dalemusser/valids/internal/app/store/assignments"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /assignments/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, ok := h.loadAccessible(ctx, w, r, cur)
	if !ok {
		return
	}

	n, err := assignmentstore.New(h.DB).Delete(ctx, a.ID)
	if err != nil {
		h.Log.Error("assignments: delete failed", zap.String("assignment_id", a.ID.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	if n == 0 {
		respond.NotFound(w, "Assignment not found")
		return
	}

	h.AuditLog.AssignmentDeleted(ctx, r, cur, a)
	w.WriteHeader(http.StatusNoContent)
}
