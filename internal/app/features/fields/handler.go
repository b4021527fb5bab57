// internal/app/features/fields/handler.go
package fields

import (
	"context"
	"errors"
	"net/http"
	"strings"

	fieldstore "github.com/dalemusser/valids/internal/app/store/fields"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	page, ok := formutil.Page(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := fieldstore.New(h.DB).Find(ctx, bson.M{}, page.FindOptions())
	if err != nil {
		h.Log.Error("fields: list failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}

func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.PathID(w, r, "id", "field")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	f, err := fieldstore.New(h.DB).GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "Field not found")
		return
	}
	if err != nil {
		h.Log.Error("fields: get failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, f)
}

// ServeByType handles GET /fields/type/{field_type}. The type tag is an
// open set, so any value is accepted and may match nothing.
func (h *Handler) ServeByType(w http.ResponseWriter, r *http.Request) {
	fieldType := strings.TrimSpace(chi.URLParam(r, "field_type"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := fieldstore.New(h.DB).FindByType(ctx, fieldType)
	if err != nil {
		h.Log.Error("fields: list by type failed", zap.String("field_type", fieldType), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}
