// internal/app/features/fields/edit.go
package fields

import (
	"context"
	"errors"
	"net/http"

	fieldstore "github.com/dalemusser/valids/internal/app/store/fields"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type editFieldInput struct {
	Name       *string   `json:"field_name" validate:"omitempty,min=1,max=200" label:"Field name"`
	Type       *string   `json:"fieldType" validate:"omitempty,max=50" label:"Field type"`
	IsRequired *bool     `json:"isRequired"`
	Options    *[]string `json:"options" validate:"omitempty,max=100,dive,max=200" label:"Options"`
	IsActive   *bool     `json:"is_active"`
}

// HandleEdit handles PUT /fields/{id}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.PathID(w, r, "id", "field")
	if !ok {
		return
	}

	var in editFieldInput
	if !formutil.Bind(w, r, &in) {
		return
	}

	p := models.FieldPatch{
		Name:       formutil.Trim(in.Name),
		Type:       formutil.Trim(in.Type),
		IsRequired: in.IsRequired,
		IsActive:   in.IsActive,
	}
	if p.Name != nil && *p.Name == "" {
		respond.BadRequest(w, "Field name is required")
		return
	}
	if p.Type != nil && *p.Type == "" {
		respond.BadRequest(w, "Field type is required")
		return
	}
	if in.Options != nil {
		opts := trimOptions(*in.Options)
		p.Options = &opts
	}
	if p.Empty() {
		respond.BadRequest(w, "No fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := fieldstore.New(h.DB).Update(ctx, id, p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "Field not found")
		return
	}
	if err != nil {
		h.Log.Error("fields: update failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, updated)
}
