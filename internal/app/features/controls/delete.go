// internal/app/features/controls/delete.go
package controls

import (
	"context"
	"net/http"

	controlstore "github.com/dalemusser/valids/internal/app/store/controls"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /controls/{id}. Documents referencing the
// deleted one are not touched.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.PathID(w, r, "id", "control")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := controlstore.New(h.DB).Delete(ctx, id)
	if err != nil {
		h.Log.Error("controls: delete failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	if n == 0 {
		respond.NotFound(w, "Control not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
