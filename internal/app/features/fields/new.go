// internal/app/features/fields/new.go
package fields

import (
	"context"
	"net/http"
	"strings"

	fieldstore "github.com/dalemusser/valids/internal/app/store/fields"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.uber.org/zap"
)

type createFieldInput struct {
	Name       string   `json:"field_name" validate:"required,min=1,max=200" label:"Field name"`
	Type       string   `json:"fieldType" validate:"required,max=50" label:"Field type"`
	IsRequired bool     `json:"isRequired"`
	Options    []string `json:"options" validate:"omitempty,max=100,dive,max=200" label:"Options"`
	IsActive   *bool    `json:"is_active"`
}

// HandleCreate handles POST /fields.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createFieldInput
	if !formutil.Bind(w, r, &in) {
		return
	}
	name, fieldType := strings.TrimSpace(in.Name), strings.TrimSpace(in.Type)
	if name == "" {
		respond.BadRequest(w, "Field name is required")
		return
	}
	if fieldType == "" {
		respond.BadRequest(w, "Field type is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := fieldstore.New(h.DB).Create(ctx, models.Field{
		Name:       name,
		Type:       fieldType,
		IsRequired: in.IsRequired,
		Options:    trimOptions(in.Options),
		IsActive:   in.IsActive == nil || *in.IsActive,
	})
	if err != nil {
		h.Log.Error("fields: create failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

// trimOptions trims each option and drops blanks; nil stays nil.
func trimOptions(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, o := range in {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
