// internal/app/features/iso/handler.go
package iso

import (
	"context"
	"errors"
	"net/http"

	isostore "github.com/dalemusser/valids/internal/app/store/isostandards"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the ISO standard endpoints.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// ServeList handles GET /iso?skip&limit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	page, ok := formutil.Page(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := isostore.New(h.DB).Find(ctx, bson.M{}, page.FindOptions())
	if err != nil {
		h.Log.Error("iso: list failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}

// ServeView handles GET /iso/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.PathID(w, r, "id", "ISO")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	iso, err := isostore.New(h.DB).GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "ISO not found")
		return
	}
	if err != nil {
		h.Log.Error("iso: get failed", zap.String("iso_id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, iso)
}

// ServeByControl handles GET /iso/control/{control_id}.
func (h *Handler) ServeByControl(w http.ResponseWriter, r *http.Request) {
	cid, ok := formutil.PathID(w, r, "control_id", "control")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := isostore.New(h.DB).FindByControl(ctx, models.ControlID(cid.Hex()))
	if err != nil {
		h.Log.Error("iso: list by control failed", zap.String("control_id", cid.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}
