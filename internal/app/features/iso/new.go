// internal/app/features/iso/new.go
package iso

import (
	"context"
	"net/http"
	"strings"

	controlstore "github.com/dalemusser/valids/internal/app/store/controls"
	isostore "github.com/dalemusser/valids/internal/app/store/isostandards"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/htmlsanitize"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.uber.org/zap"
)

type createISOInput struct {
	Name        string  `json:"iso_name" validate:"required,min=1,max=200" label:"ISO name"`
	Description *string `json:"iso_description" validate:"omitempty,max=2000" label:"ISO description"`
	ControlID   string  `json:"control_id" validate:"required,objectid" label:"control ID"`
	IsActive    *bool   `json:"is_active"`
}

// HandleCreate handles POST /iso. The referenced control must exist.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createISOInput
	if !formutil.Bind(w, r, &in) {
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		respond.BadRequest(w, "ISO name is required")
		return
	}
	controlID, _ := models.ParseObjectID(in.ControlID)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !formutil.RequireRef(ctx, w, h.Log, controlstore.New(h.DB).Exists, controlID, "Control not found") {
		return
	}

	created, err := isostore.New(h.DB).Create(ctx, models.ISOStandard{
		Name:        name,
		Description: htmlsanitize.SanitizePtr(in.Description),
		ControlID:   models.ControlID(controlID.Hex()),
		IsActive:    in.IsActive == nil || *in.IsActive,
	})
	if err != nil {
		h.Log.Error("iso: create failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}
