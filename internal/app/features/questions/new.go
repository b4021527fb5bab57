// internal/app/features/questions/new.go
package questions

import (
	"context"
	"net/http"

	fieldstore "github.com/dalemusser/valids/internal/app/store/fields"
	questionstore "github.com/dalemusser/valids/internal/app/store/questions"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/htmlsanitize"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.uber.org/zap"
)

type createQuestionInput struct {
	Description string `json:"description" validate:"required,min=1,max=2000" label:"Description"`
	FieldID     string `json:"fields_id" validate:"required,objectid" label:"field ID"`
	IsActive    *bool  `json:"is_active"`
}

// HandleCreate handles POST /questions.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createQuestionInput
	if !formutil.Bind(w, r, &in) {
		return
	}
	desc := htmlsanitize.Sanitize(in.Description)
	if desc == "" {
		respond.BadRequest(w, "Description is required")
		return
	}
	refID, _ := models.ParseObjectID(in.FieldID)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !formutil.RequireRef(ctx, w, h.Log, fieldstore.New(h.DB).Exists, refID, "Field not found") {
		return
	}

	created, err := questionstore.New(h.DB).Create(ctx, models.Question{
		Description: desc,
		FieldID:     models.FieldID(refID.Hex()),
		IsActive:    in.IsActive == nil || *in.IsActive,
	})
	if err != nil {
		h.Log.Error("questions: create failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}
