// internal/app/features/submissions/handler.go
package submissions

import (
	"context"
	"errors"
	"net/http"
	"time"

	submissionstore "github.com/dalemusser/valids/internal/app/store/submissions"
	"github.com/dalemusser/valids/internal/app/system/auditlog"
	"github.com/dalemusser/valids/internal/app/system/authz"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	AuditLog *auditlog.Logger

	// now stamps lifecycle transitions.
	now func() time.Time
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		AuditLog: audit,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// loadAccessible fetches the submission named by the {id} path parameter and
// checks that u may access its company. It writes the error response and
// returns false when the handler should stop.
func (h *Handler) loadAccessible(ctx context.Context, w http.ResponseWriter, r *http.Request, u *models.User) (models.Submission, bool) {
	id, ok := formutil.PathID(w, r, "id", "submission")
	if !ok {
		return models.Submission{}, false
	}

	sub, err := submissionstore.New(h.DB).GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "Submission not found")
		return models.Submission{}, false
	}
	if err != nil {
		h.Log.Error("submissions: get failed", zap.String("submission_id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return models.Submission{}, false
	}
	if !authz.CanAccessCompany(u, sub.CompanyID) {
		respond.Forbidden(w, "Access denied to this submission")
		return models.Submission{}, false
	}
	return sub, true
}
