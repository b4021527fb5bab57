// internal/app/features/iso/delete.go
package iso

import (
	"context"
	"net/http"

	isostore "github.com/dalemusser/valids/internal/app/store/isostandards"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /iso/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.PathID(w, r, "id", "ISO")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := isostore.New(h.DB).Delete(ctx, id)
	if err != nil {
		h.Log.Error("iso: delete failed", zap.String("iso_id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	if n == 0 {
		respond.NotFound(w, "ISO not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
