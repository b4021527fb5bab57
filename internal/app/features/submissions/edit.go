// internal/app/features/submissions/edit.go
package submissions

import (
	"context"
	"errors"
	"net/http"

	submissionstore "github.com/dalemusser/valids/internal/app/store/submissions"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/htmlsanitize"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type editSubmissionInput struct {
	Status             *string        `json:"status" validate:"omitempty,submissionstatus" label:"status"`
	Data               map[string]any `json:"submission_data" label:"Submission data"`
	ReviewerNotes      *string        `json:"reviewer_notes" validate:"omitempty,max=2000" label:"Reviewer notes"`
	ProgressPercentage *int           `json:"progress_percentage" validate:"omitempty,gte=0,lte=100" label:"Progress percentage"`
}

// HandleEdit handles PUT /submissions/{id}. Status changes are not
// restricted; the lifecycle stamps follow the transition.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sub, ok := h.loadAccessible(ctx, w, r, cur)
	if !ok {
		return
	}

	var in editSubmissionInput
	if !formutil.Bind(w, r, &in) {
		return
	}

	p := models.SubmissionPatch{
		Data:               in.Data,
		ReviewerNotes:      htmlsanitize.SanitizePtr(in.ReviewerNotes),
		ProgressPercentage: in.ProgressPercentage,
	}
	if in.Status != nil {
		st := models.SubmissionStatus(*in.Status)
		p.Status = &st
	}
	if p.Empty() {
		respond.BadRequest(w, "No fields to update")
		return
	}
	p.StampTransition(sub.Status, h.now())

	updated, err := submissionstore.New(h.DB).Update(ctx, sub.ID, p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "Submission not found")
		return
	}
	if err != nil {
		h.Log.Error("submissions: update failed", zap.String("submission_id", sub.ID.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}

	if updated.Status != sub.Status {
		h.AuditLog.SubmissionStatusChanged(ctx, r, cur, updated, sub.Status)
	}
	respond.OK(w, updated)
}
