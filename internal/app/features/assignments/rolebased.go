// internal/app/features/assignments/rolebased.go
package assignments

import (
	"context"
	"errors"
	"net/http"

	assignmentstore "github.com/dalemusser/valids/internal/app/store/assignments"
	controlstore "github.com/dalemusser/valids/internal/app/store/controls"
	isostore "github.com/dalemusser/valids/internal/app/store/isostandards"
	questionstore "github.com/dalemusser/valids/internal/app/store/questions"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeRoleBasedQuestions handles GET /assignments/questions/role-based?user_id&iso_id.
//
// A user with active assignments gets the union of their assigned questions;
// a user without any gets every active question. iso_id narrows the result
// to the question behind that standard's control.
func (h *Handler) ServeRoleBasedQuestions(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)
	uid, ok := formutil.RefID(w, query.Get(r, "user_id"), "user")
	if !ok {
		return
	}
	var isoID primitive.ObjectID
	if raw := query.Get(r, "iso_id"); raw != "" {
		if isoID, ok = formutil.RefID(w, raw, "ISO"); !ok {
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	target, ok := h.loadAccessibleUser(ctx, w, cur, uid)
	if !ok {
		return
	}

	ids, err := h.assignedQuestionIDs(ctx, target.UserID())
	if err != nil {
		h.Log.Error("assignments: active assignments failed", zap.String("user_id", uid.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}

	if !isoID.IsZero() {
		qid, found, err := h.isoQuestionID(ctx, isoID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "ISO standard not found")
			return
		}
		if err != nil {
			h.Log.Error("assignments: iso chain lookup failed", zap.String("iso_id", isoID.Hex()), zap.Error(err))
			respond.Internal(w)
			return
		}
		ids = narrow(ids, qid, found)
	}

	list, err := questionstore.New(h.DB).FindActive(ctx, ids)
	if err != nil {
		h.Log.Error("assignments: question list failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}

// assignedQuestionIDs returns the distinct question ids of userID's active
// assignments in assignment order, or nil when there are none.
func (h *Handler) assignedQuestionIDs(ctx context.Context, userID models.UserID) ([]primitive.ObjectID, error) {
	active, err := assignmentstore.New(h.DB).ActiveForUser(ctx, userID)
	if err != nil || len(active) == 0 {
		return nil, err
	}

	seen := make(map[primitive.ObjectID]struct{})
	ids := []primitive.ObjectID{}
	for _, a := range active {
		for _, q := range a.QuestionIDs {
			oid, err := q.ObjectID()
			if err != nil {
				continue
			}
			if _, dup := seen[oid]; dup {
				continue
			}
			seen[oid] = struct{}{}
			ids = append(ids, oid)
		}
	}
	return ids, nil
}

// isoQuestionID follows ISO → control → question. found is false when the
// chain is broken below the ISO document.
func (h *Handler) isoQuestionID(ctx context.Context, isoID primitive.ObjectID) (qid primitive.ObjectID, found bool, err error) {
	iso, err := isostore.New(h.DB).GetByID(ctx, isoID)
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	cid, err := iso.ControlID.ObjectID()
	if err != nil {
		return primitive.NilObjectID, false, nil
	}
	ctl, err := controlstore.New(h.DB).GetByID(ctx, cid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, false, nil
	}
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	qid, err = ctl.QuestionID.ObjectID()
	if err != nil {
		return primitive.NilObjectID, false, nil
	}
	return qid, true, nil
}

// narrow restricts ids (nil meaning all) to qid. A broken chain yields none.
func narrow(ids []primitive.ObjectID, qid primitive.ObjectID, found bool) []primitive.ObjectID {
	if !found {
		return []primitive.ObjectID{}
	}
	if ids == nil {
		return []primitive.ObjectID{qid}
	}
	for _, id := range ids {
		if id == qid {
			return []primitive.ObjectID{qid}
		}
	}
	return []primitive.ObjectID{}
}
