// internal/app/features/submissions/new.go
package submissions

import (
	"context"
	"errors"
	"net/http"

	companystore "github.com/dalemusser/valids/internal/app/store/companies"
	isostore "github.com/dalemusser/valids/internal/app/store/isostandards"
	submissionstore "github.com/dalemusser/valids/internal/app/store/submissions"
	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/authz"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/htmlsanitize"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createSubmissionInput struct {
	UserID             string         `json:"user_id" validate:"required,objectid" label:"user ID"`
	CompanyID          string         `json:"company_id" validate:"required,objectid" label:"company ID"`
	ISOID              string         `json:"iso_id" validate:"required,objectid" label:"ISO ID"`
	Status             string         `json:"status" validate:"omitempty,submissionstatus" label:"status"`
	Data               map[string]any `json:"submission_data" validate:"required" label:"Submission data"`
	ReviewerNotes      *string        `json:"reviewer_notes" validate:"omitempty,max=2000" label:"Reviewer notes"`
	ProgressPercentage int            `json:"progress_percentage" validate:"gte=0,lte=100" label:"Progress percentage"`
}

// HandleCreate handles POST /submissions. The author must exist and belong
// to the stated company, and the caller must have access to that company.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	cur, _ := auth.CurrentUser(r)

	var in createSubmissionInput
	if !formutil.Bind(w, r, &in) {
		return
	}

	uid, _ := models.ParseObjectID(in.UserID)
	cid, _ := models.ParseObjectID(in.CompanyID)
	isoID, _ := models.ParseObjectID(in.ISOID)
	companyID := models.CompanyID(cid.Hex())

	if !authz.CanAccessCompany(cur, companyID) {
		respond.Forbidden(w, "Access denied to this company")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	author, err := userstore.New(h.DB).GetByID(ctx, uid)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Error("submissions: author lookup failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	if err != nil || author.CompanyRef() != companyID {
		respond.NotFound(w, "User not found or doesn't belong to this company")
		return
	}
	if !formutil.RequireRef(ctx, w, h.Log, companystore.New(h.DB).Exists, cid, "Company not found") {
		return
	}
	if !formutil.RequireRef(ctx, w, h.Log, isostore.New(h.DB).Exists, isoID, "ISO standard not found") {
		return
	}

	created, err := submissionstore.New(h.DB).Create(ctx, models.Submission{
		UserID:             models.UserID(uid.Hex()),
		CompanyID:          companyID,
		ISOID:              models.ISOID(isoID.Hex()),
		Status:             models.SubmissionStatus(in.Status),
		Data:               in.Data,
		ReviewerNotes:      htmlsanitize.SanitizePtr(in.ReviewerNotes),
		ProgressPercentage: in.ProgressPercentage,
	})
	if err != nil {
		h.Log.Error("submissions: create failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}
