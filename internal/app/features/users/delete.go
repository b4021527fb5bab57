// internal/app/features/users/delete.go
package users

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /users/{id}. The document is removed; use
// /admin/deactivate-user to keep it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id, ok := formutil.PathID(w, r, "id", "user")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := userstore.New(h.DB).Delete(ctx, id)
	if err != nil {
		h.Log.Error("users: delete failed", zap.String("user_id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	if n == 0 {
		respond.NotFound(w, "User not found")
		return
	}

	h.AuditLog.UserDeleted(ctx, r, actor, id.Hex())
	w.WriteHeader(http.StatusNoContent)
}
