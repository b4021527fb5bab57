// internal/app/features/fields/delete.go
package fields

import (
	"context"
	"net/http"

	fieldstore "github.com/dalemusser/valids/internal/app/store/fields"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /fields/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.PathID(w, r, "id", "field")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := fieldstore.New(h.DB).Delete(ctx, id)
	if err != nil {
		h.Log.Error("fields: delete failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	if n == 0 {
		respond.NotFound(w, "Field not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
