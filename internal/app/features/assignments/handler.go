// internal/app/features/assignments/handler.go
package assignments

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	assignmentstore "github.com/dalemusser/valids/internal/app/store/assignments"
	questionstore "github.com/dalemusser/valids/internal/app/store/questions"
	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/auditlog"
	"github.com/dalemusser/valids/internal/app/system/authz"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	AuditLog *auditlog.Logger
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, AuditLog: audit}
}

// loadAccessibleUser fetches the user with id and checks that cur may act on
// their data.
func (h *Handler) loadAccessibleUser(ctx context.Context, w http.ResponseWriter, cur *models.User, id primitive.ObjectID) (models.User, bool) {
	u, err := userstore.New(h.DB).GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "User not found")
		return models.User{}, false
	}
	if err != nil {
		h.Log.Error("assignments: user lookup failed", zap.String("user_id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return models.User{}, false
	}
	if !authz.CanAccessUser(cur, &u) {
		respond.Forbidden(w, "Access denied to this user's data")
		return models.User{}, false
	}
	return u, true
}

// loadAccessible fetches the assignment named by {id}. Non-superadmins may
// only reach assignments whose user belongs to their company.
func (h *Handler) loadAccessible(ctx context.Context, w http.ResponseWriter, r *http.Request, cur *models.User) (models.QuestionAssignment, bool) {
	id, ok := formutil.PathID(w, r, "id", "assignment")
	if !ok {
		return models.QuestionAssignment{}, false
	}

	a, err := assignmentstore.New(h.DB).GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "Assignment not found")
		return models.QuestionAssignment{}, false
	}
	if err != nil {
		h.Log.Error("assignments: get failed", zap.String("assignment_id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return models.QuestionAssignment{}, false
	}
	if authz.IsSuperAdmin(cur) {
		return a, true
	}

	var target *models.User
	if uid, err := a.UserID.ObjectID(); err == nil {
		u, err := userstore.New(h.DB).GetByID(ctx, uid)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Error("assignments: user lookup failed", zap.String("user_id", uid.Hex()), zap.Error(err))
			respond.Internal(w)
			return models.QuestionAssignment{}, false
		}
		if err == nil {
			target = &u
		}
	}
	if !authz.CanAccessUser(cur, target) {
		respond.Forbidden(w, "Access denied to this assignment")
		return models.QuestionAssignment{}, false
	}
	return a, true
}

// questionRefs parses raw question ids and checks that each exists. Errors
// name the offending id.
func (h *Handler) questionRefs(ctx context.Context, w http.ResponseWriter, raw []string) ([]models.QuestionID, bool) {
	oids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		oid, err := models.ParseObjectID(s)
		if err != nil {
			respond.BadRequest(w, "Invalid question ID: "+s)
			return nil, false
		}
		oids = append(oids, oid)
	}

	missing, found, err := questionstore.New(h.DB).FirstMissing(ctx, oids)
	if err != nil {
		h.Log.Error("assignments: question lookup failed", zap.Error(err))
		respond.Internal(w)
		return nil, false
	}
	if found {
		respond.NotFound(w, fmt.Sprintf("Question not found: %s", missing.Hex()))
		return nil, false
	}

	ids := make([]models.QuestionID, len(oids))
	for i, oid := range oids {
		ids[i] = models.QuestionID(oid.Hex())
	}
	return ids, true
}
