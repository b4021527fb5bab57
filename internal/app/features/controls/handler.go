// internal/app/features/controls/handler.go
package controls

import (
	"context"
	"errors"
	"net/http"

	controlstore "github.com/dalemusser/valids/internal/app/store/controls"
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

	list, err := controlstore.New(h.DB).Find(ctx, bson.M{}, page.FindOptions())
	if err != nil {
		h.Log.Error("controls: list failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}

func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := formutil.PathID(w, r, "id", "control")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	doc, err := controlstore.New(h.DB).GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "Control not found")
		return
	}
	if err != nil {
		h.Log.Error("controls: get failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, doc)
}

// ServeByQuestion handles GET /controls/question/{question_id}.
func (h *Handler) ServeByQuestion(w http.ResponseWriter, r *http.Request) {
	ref, ok := formutil.PathID(w, r, "question_id", "question")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := controlstore.New(h.DB).FindByQuestion(ctx, models.QuestionID(ref.Hex()))
	if err != nil {
		h.Log.Error("controls: lookup failed", zap.String("question_id", ref.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}
