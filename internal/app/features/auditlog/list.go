// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/valids/internal/app/store/audit"
	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList handles GET /admin/audit-events - newest-first audit events
// filtered by category, event_type, user_id, company_id and date range.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	page, ok := formutil.Page(w, r)
	if !ok {
		return
	}

	in := listFilter{
		Category:  query.Get(r, "category"),
		UserID:    query.Get(r, "user_id"),
		CompanyID: query.Get(r, "company_id"),
		StartDate: query.Get(r, "start_date"),
		EndDate:   query.Get(r, "end_date"),
	}
	if !formutil.Validate(w, in) {
		return
	}
	if in.Category != "" && !validCategory(in.Category) {
		respond.BadRequest(w, "Invalid category. Must be one of: "+strings.Join(allCategories(), ", "))
		return
	}

	filter := audit.QueryFilter{
		Category:  in.Category,
		EventType: query.Get(r, "event_type"),
		UserID:    in.UserID,
		CompanyID: in.CompanyID,
		Limit:     page.Limit,
		Offset:    page.Skip,
	}

	// Parse dates
	if in.StartDate != "" {
		t, _ := time.Parse("2006-01-02", in.StartDate)
		filter.StartTime = &t
	}
	if in.EndDate != "" {
		t, _ := time.Parse("2006-01-02", in.EndDate)
		// End of day
		endOfDay := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndTime = &endOfDay
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	store := audit.New(h.DB)
	events, err := store.Query(ctx, filter)
	if err != nil {
		h.Log.Error("failed to query audit events", zap.Error(err))
		respond.Internal(w)
		return
	}
	total, err := store.Count(ctx, filter)
	if err != nil {
		h.Log.Error("failed to count audit events", zap.Error(err))
		respond.Internal(w)
		return
	}

	names := h.userNames(ctx, events)
	items := make([]listItem, len(events))
	for i, e := range events {
		items[i] = listItem{Event: e, ActorName: names[e.ActorID], TargetName: names[e.UserID]}
	}
	respond.OK(w, listResult{Events: items, Total: total})
}

// userNames batch-resolves the actor and target ids of events to usernames.
// Lookup failures only cost the names.
func (h *Handler) userNames(ctx context.Context, events []audit.Event) map[string]string {
	seen := make(map[primitive.ObjectID]struct{})
	ids := []primitive.ObjectID{}
	for _, e := range events {
		for _, raw := range []string{e.ActorID, e.UserID} {
			oid, err := models.ParseObjectID(raw)
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

	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out
	}
	users, err := userstore.New(h.DB).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		h.Log.Warn("failed to fetch user names for audit events", zap.Error(err))
		return out
	}
	for _, u := range users {
		out[u.ID.Hex()] = u.Username
	}
	return out
}
