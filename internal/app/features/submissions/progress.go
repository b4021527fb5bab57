// internal/app/features/submissions/progress.go
package submissions

import (
	"context"
	"net/http"
	"reflect"

	submissionstore "github.com/dalemusser/valids/internal/app/store/submissions"
	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/authz"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeCompanyProgress handles GET /submissions/company/{company_id}/progress:
// one progress row per submission of the company whose author still exists.
func (h *Handler) ServeCompanyProgress(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)
	cid, ok := formutil.PathID(w, r, "company_id", "company")
	if !ok {
		return
	}
	companyID := models.CompanyID(cid.Hex())
	if !authz.CanAccessCompany(cur, companyID) {
		respond.Forbidden(w, "Access denied to this company")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	subs, err := submissionstore.New(h.DB).FindByCompany(ctx, companyID)
	if err != nil {
		h.Log.Error("submissions: progress list failed", zap.String("company_id", cid.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}

	authors, err := h.authorsOf(ctx, subs)
	if err != nil {
		h.Log.Error("submissions: progress authors failed", zap.String("company_id", cid.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}

	out := make([]models.SubmissionProgress, 0, len(subs))
	for _, s := range subs {
		u, found := authors[string(s.UserID)]
		if !found {
			continue
		}
		out = append(out, progressOf(s, u))
	}
	respond.OK(w, out)
}

// authorsOf loads the users referenced by subs in one query, keyed by hex id.
func (h *Handler) authorsOf(ctx context.Context, subs []models.Submission) (map[string]models.User, error) {
	seen := make(map[primitive.ObjectID]struct{}, len(subs))
	ids := make([]primitive.ObjectID, 0, len(subs))
	for _, s := range subs {
		oid, err := s.UserID.ObjectID()
		if err != nil {
			continue
		}
		if _, dup := seen[oid]; dup {
			continue
		}
		seen[oid] = struct{}{}
		ids = append(ids, oid)
	}

	out := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	users, err := userstore.New(h.DB).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID.Hex()] = u
	}
	return out, nil
}

func progressOf(s models.Submission, author models.User) models.SubmissionProgress {
	completed := 0
	for _, v := range s.Data {
		if answered(v) {
			completed++
		}
	}
	last := s.UpdatedAt
	if last.IsZero() {
		last = s.CreatedAt
	}
	status := s.Status
	if status == "" {
		status = models.StatusDraft
	}
	return models.SubmissionProgress{
		SubmissionID:       s.ID.Hex(),
		TotalQuestions:     len(s.Data),
		CompletedQuestions: completed,
		ProgressPercentage: s.ProgressPercentage,
		Status:             status,
		LastUpdated:        last,
		UserName:           author.Username,
		UserRole:           author.Role,
	}
}

// answered reports whether an answer value is filled in: not nil, false,
// zero, or an empty string, list or document.
func answered(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	default:
		return !rv.IsZero()
	}
}
