// internal/app/features/auditlog/types.go
package auditlog

import (
	"github.com/dalemusser/valids/internal/app/store/audit"
)

// listItem is one audit event with its user ids resolved to usernames.
type listItem struct {
	audit.Event
	ActorName  string `json:"actor_name,omitempty"`
	TargetName string `json:"target_name,omitempty"`
}

// listResult is the GET /admin/audit-events response.
type listResult struct {
	Events []listItem `json:"events"`
	Total  int64      `json:"total"`
}

type listFilter struct {
	Category  string
	UserID    string `validate:"omitempty,objectid" label:"user ID"`
	CompanyID string `validate:"omitempty,objectid" label:"company ID"`
	StartDate string `validate:"omitempty,datetime=2006-01-02" label:"start_date"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02" label:"end_date"`
}

// allCategories returns the event categories in display order.
func allCategories() []string {
	return []string{audit.CategoryAuth, audit.CategoryAdmin, audit.CategoryReview}
}

func validCategory(c string) bool {
	for _, v := range allCategories() {
		if v == c {
			return true
		}
	}
	return false
}
