// internal/app/features/iso/edit.go
package iso

import (
	"context"
	"errors"
	"net/http"

	controlstore "github.com/dalemusser/valids/internal/app/store/controls"
	isostore "github.com/dalemusser/valids/internal/app/store/isostandards"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/htmlsanitize"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type editISOInput struct {
	Name        *string `json:"iso_name" validate:"omitempty,min=1,max=200" label:"ISO name"`
	Description *string `json:"iso_description" validate:"omitempty,max=2000" label:"ISO description"`
	ControlID   *string `json:"control_id" validate:"omitempty,objectid" label:"control ID"`
	IsActive    *bool   `json:"is_active"`
}

// HandleEdit handles PUT /iso/{id}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.PathID(w, r, "id", "ISO")
	if !ok {
		return
	}

	var in editISOInput
	if !formutil.Bind(w, r, &in) {
		return
	}

	p := models.ISOStandardPatch{
		Name:        formutil.Trim(in.Name),
		Description: htmlsanitize.SanitizePtr(in.Description),
		IsActive:    in.IsActive,
	}
	if p.Name != nil && *p.Name == "" {
		respond.BadRequest(w, "ISO name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if in.ControlID != nil {
		oid, _ := models.ParseObjectID(*in.ControlID)
		if !formutil.RequireRef(ctx, w, h.Log, controlstore.New(h.DB).Exists, oid, "Control not found") {
			return
		}
		ref := models.ControlID(oid.Hex())
		p.ControlID = &ref
	}
	if p.Empty() {
		respond.BadRequest(w, "No fields to update")
		return
	}

	updated, err := isostore.New(h.DB).Update(ctx, id, p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "ISO not found")
		return
	}
	if err != nil {
		h.Log.Error("iso: update failed", zap.String("iso_id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, updated)
}
