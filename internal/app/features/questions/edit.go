// internal/app/features/questions/edit.go
package questions

import (
	"context"
	"errors"
	"net/http"

	fieldstore "github.com/dalemusser/valids/internal/app/store/fields"
	questionstore "github.com/dalemusser/valids/internal/app/store/questions"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/htmlsanitize"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type editQuestionInput struct {
	Description *string `json:"description" validate:"omitempty,min=1,max=2000" label:"Description"`
	FieldID     *string `json:"fields_id" validate:"omitempty,objectid" label:"field ID"`
	IsActive    *bool   `json:"is_active"`
}

// HandleEdit handles PUT /questions/{id}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.PathID(w, r, "id", "question")
	if !ok {
		return
	}

	var in editQuestionInput
	if !formutil.Bind(w, r, &in) {
		return
	}

	p := models.QuestionPatch{
		Description: htmlsanitize.SanitizePtr(in.Description),
		IsActive:    in.IsActive,
	}
	if p.Description != nil && *p.Description == "" {
		respond.BadRequest(w, "Description is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if in.FieldID != nil {
		oid, _ := models.ParseObjectID(*in.FieldID)
		if !formutil.RequireRef(ctx, w, h.Log, fieldstore.New(h.DB).Exists, oid, "Field not found") {
			return
		}
		ref := models.FieldID(oid.Hex())
		p.FieldID = &ref
	}
	if p.Empty() {
		respond.BadRequest(w, "No fields to update")
		return
	}

	updated, err := questionstore.New(h.DB).Update(ctx, id, p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "Question not found")
		return
	}
	if err != nil {
		h.Log.Error("questions: update failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, updated)
}
