// internal/app/features/questions/delete.go
package questions

import (
	"context"
	"net/http"

	questionstore "github.com/dalemusser/valids/internal/app/store/questions"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /questions/{id}. Documents referencing the
// deleted one are not touched.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.PathID(w, r, "id", "question")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := questionstore.New(h.DB).Delete(ctx, id)
	if err != nil {
		h.Log.Error("questions: delete failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	if n == 0 {
		respond.NotFound(w, "Question not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
