// internal/app/features/assignments/edit.go
package assignments

import (
	"context"
	"errors"
	"net/http"

	assignmentstore "github.com/dalemusser/valids/internal/app/store/assignments"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleEdit handles PUT /assignments/{id}. Replacement question ids are
// validated the same way as on assignment.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, ok := h.loadAccessible(ctx, w, r, cur)
	if !ok {
		return
	}

	var in editAssignmentInput
	if !formutil.Bind(w, r, &in) {
		return
	}

	p := models.QuestionAssignmentPatch{IsActive: in.IsActive}
	if in.QuestionIDs != nil {
		qids, ok := h.questionRefs(ctx, w, *in.QuestionIDs)
		if !ok {
			return
		}
		p.QuestionIDs = &qids
	}
	if p.Empty() {
		respond.BadRequest(w, "No fields to update")
		return
	}

	updated, err := assignmentstore.New(h.DB).Update(ctx, a.ID, p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "Assignment not found")
		return
	}
	if err != nil {
		h.Log.Error("assignments: update failed", zap.String("assignment_id", a.ID.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, updated)
}
