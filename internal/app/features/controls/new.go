// internal/app/features/controls/new.go
package controls

import (
	"context"
	"net/http"
	"strings"

	controlstore "github.com/dalemusser/valids/internal/app/store/controls"
	questionstore "github.com/dalemusser/valids/internal/app/store/questions"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.uber.org/zap"
)

type createControlInput struct {
	Name       string `json:"control_name" validate:"required,min=1,max=200" label:"Control name"`
	Key        string `json:"control_key" validate:"required,min=1,max=50" label:"Control key"`
	QuestionID string `json:"question_id" validate:"required,objectid" label:"question ID"`
	IsActive   *bool  `json:"is_active"`
}

// HandleCreate handles POST /controls.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createControlInput
	if !formutil.Bind(w, r, &in) {
		return
	}
	name, key := strings.TrimSpace(in.Name), strings.TrimSpace(in.Key)
	if name == "" {
		respond.BadRequest(w, "Control name is required")
		return
	}
	if key == "" {
		respond.BadRequest(w, "Control key is required")
		return
	}
	refID, _ := models.ParseObjectID(in.QuestionID)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !formutil.RequireRef(ctx, w, h.Log, questionstore.New(h.DB).Exists, refID, "Question not found") {
		return
	}

	created, err := controlstore.New(h.DB).Create(ctx, models.Control{
		Name:       name,
		Key:        key,
		QuestionID: models.QuestionID(refID.Hex()),
		IsActive:   in.IsActive == nil || *in.IsActive,
	})
	if err != nil {
		h.Log.Error("controls: create failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}
