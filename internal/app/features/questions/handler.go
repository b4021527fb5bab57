// internal/app/features/questions/handler.go
package questions

import (
	"context"
	"errors"
	"net/http"

	questionstore "github.com/dalemusser/valids/internal/app/store/questions"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
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

	list, err := questionstore.New(h.DB).Find(ctx, bson.M{}, page.FindOptions())
	if err != nil {
		h.Log.Error("questions: list failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}

func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.PathID(w, r, "id", "question")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	doc, err := questionstore.New(h.DB).GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "Question not found")
		return
	}
	if err != nil {
		h.Log.Error("questions: get failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, doc)
}

// ServeByField handles GET /questions/field/{field_id}.
func (h *Handler) ServeByField(w http.ResponseWriter, r *http.Request) {
	ref, ok := formutil.PathID(w, r, "field_id", "field")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := questionstore.New(h.DB).FindByField(ctx, models.FieldID(ref.Hex()))
	if err != nil {
		h.Log.Error("questions: lookup failed", zap.String("field_id", ref.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}
