// internal/domain/models/submission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionStatus is the lifecycle state of a submission.
type SubmissionStatus string

const (
	StatusDraft           SubmissionStatus = "draft"
	StatusSubmitted       SubmissionStatus = "submitted"
	StatusUnderReview     SubmissionStatus = "under_review"
	StatusApproved        SubmissionStatus = "approved"
	StatusRejected        SubmissionStatus = "rejected"
	StatusRequiresChanges SubmissionStatus = "requires_changes"
)

// AllSubmissionStatuses lists statuses in lifecycle order.
var AllSubmissionStatuses = []SubmissionStatus{
	StatusDraft, StatusSubmitted, StatusUnderReview,
	StatusApproved, StatusRejected, StatusRequiresChanges,
}

// SubmissionStatusStrings returns AllSubmissionStatuses as plain strings.
func SubmissionStatusStrings() []string {
	out := make([]string, len(AllSubmissionStatuses))
	for i, s := range AllSubmissionStatuses {
		out[i] = string(s)
	}
	return out
}

// Valid reports whether s is a known status.
func (s SubmissionStatus) Valid() bool {
	for _, v := range AllSubmissionStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsReviewOutcome reports whether s is one of the terminal review states.
func (s SubmissionStatus) IsReviewOutcome() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusRequiresChanges
}

// Submission is one employee's set of answers for a company/ISO pair.
type Submission struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID             UserID             `bson:"user_id" json:"user_id"`
	CompanyID          CompanyID          `bson:"company_id" json:"company_id"`
	ISOID              ISOID              `bson:"iso_id" json:"iso_id"`
	Status             SubmissionStatus   `bson:"status" json:"status"`
	Data               map[string]any     `bson:"submission_data" json:"submission_data"`
	ReviewerNotes      *string            `bson:"reviewer_notes" json:"reviewer_notes"`
	ProgressPercentage int                `bson:"progress_percentage" json:"progress_percentage"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
	SubmittedAt        *time.Time         `bson:"submitted_at" json:"submitted_at"`
	ReviewedAt         *time.Time         `bson:"reviewed_at" json:"reviewed_at"`
}

// SubmissionPatch carries the optional fields of a submission update.
// SubmittedAt/ReviewedAt are derived from Status, never supplied by clients.
type SubmissionPatch struct {
	Status             *SubmissionStatus
	Data               map[string]any // nil means not supplied
	ReviewerNotes      *string
	ProgressPercentage *int

	SubmittedAt *time.Time
	ReviewedAt  *time.Time
}

func (p SubmissionPatch) Empty() bool {
	return p.Status == nil && p.Data == nil && p.ReviewerNotes == nil && p.ProgressPercentage == nil
}

// StampTransition sets SubmittedAt and ReviewedAt for a status change from
// prev. Moving from draft to submitted stamps SubmittedAt; entering any
// review outcome stamps ReviewedAt. Any other change stamps nothing.
func (p *SubmissionPatch) StampTransition(prev SubmissionStatus, now time.Time) {
	if p.Status == nil {
		return
	}
	next := *p.Status
	if next == StatusSubmitted && prev == StatusDraft {
		p.SubmittedAt = &now
	}
	if next.IsReviewOutcome() {
		p.ReviewedAt = &now
	}
}

// SubmissionProgress is the spectator view of one submission.
type SubmissionProgress struct {
	SubmissionID       string           `json:"submission_id"`
	TotalQuestions     int              `json:"total_questions"`
	CompletedQuestions int              `json:"completed_questions"`
	ProgressPercentage int              `json:"progress_percentage"`
	Status             SubmissionStatus `json:"status"`
	LastUpdated        time.Time        `json:"last_updated"`
	UserName           string           `json:"user_name"`
	UserRole           string           `json:"user_role"`
}
