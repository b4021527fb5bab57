// internal/app/features/controls/edit.go
package controls

import (
	"context"
	"errors"
	"net/http"

	controlstore "github.com/dalemusser/valids/internal/app/store/controls"
	questionstore "github.com/dalemusser/valids/internal/app/store/questions"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type editControlInput struct {
	Name       *string `json:"control_name" validate:"omitempty,min=1,max=200" label:"Control name"`
	Key        *string `json:"control_key" validate:"omitempty,min=1,max=50" label:"Control key"`
	QuestionID *string `json:"question_id" validate:"omitempty,objectid" label:"question ID"`
	IsActive   *bool   `json:"is_active"`
}

// HandleEdit handles PUT /controls/{id}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.PathID(w, r, "id", "control")
	if !ok {
		return
	}

	var in editControlInput
	if !formutil.Bind(w, r, &in) {
		return
	}

	p := models.ControlPatch{
		Name:     formutil.Trim(in.Name),
		Key:      formutil.Trim(in.Key),
		IsActive: in.IsActive,
	}
	if p.Name != nil && *p.Name == "" {
		respond.BadRequest(w, "Control name is required")
		return
	}
	if p.Key != nil && *p.Key == "" {
		respond.BadRequest(w, "Control key is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if in.QuestionID != nil {
		oid, _ := models.ParseObjectID(*in.QuestionID)
		if !formutil.RequireRef(ctx, w, h.Log, questionstore.New(h.DB).Exists, oid, "Question not found") {
			return
		}
		ref := models.QuestionID(oid.Hex())
		p.QuestionID = &ref
	}
	if p.Empty() {
		respond.BadRequest(w, "No fields to update")
		return
	}

	updated, err := controlstore.New(h.DB).Update(ctx, id, p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "Control not found")
		return
	}
	if err != nil {
		h.Log.Error("controls: update failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, updated)
}
