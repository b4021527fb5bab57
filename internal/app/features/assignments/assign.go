// internal/app/features/assignments/assign.go
package assignments

import (
	"context"
	"net/http"
	"strings"

	assignmentstore "github.com/dalemusser/valids/internal/app/store/assignments"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// HandleAssign handles POST /assignments/questions/assign. user_id may come
// from the body or the query string.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)

	var in assignInput
	if err := respond.DecodeJSON(r, &in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(in.UserID) == "" {
		in.UserID = query.Get(r, "user_id")
	}
	if !formutil.Validate(w, in) {
		return
	}
	uid, _ := models.ParseObjectID(in.UserID)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Malformed question ids are rejected before any lookup.
	for _, s := range in.QuestionIDs {
		if !models.ValidID(s) {
			respond.BadRequest(w, "Invalid question ID: "+s)
			return
		}
	}

	target, ok := h.loadAccessibleUser(ctx, w, cur, uid)
	if !ok {
		return
	}
	qids, ok := h.questionRefs(ctx, w, in.QuestionIDs)
	if !ok {
		return
	}

	a, err := assignmentstore.New(h.DB).Create(ctx, models.QuestionAssignment{
		UserID:      target.UserID(),
		QuestionIDs: qids,
		AssignedBy:  cur.UserID(),
	})
	if err != nil {
		h.Log.Error("assignments: create failed", zap.String("user_id", uid.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}

	h.AuditLog.QuestionsAssigned(ctx, r, cur, target, a)
	respond.OK(w, assignResult{
		Message:           "Questions assigned successfully",
		AssignmentID:      a.ID.Hex(),
		AssignedQuestions: len(a.QuestionIDs),
	})
}
