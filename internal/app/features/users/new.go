// internal/app/features/users/new.go
package users

import (
	"context"
	"errors"
	"net/http"
	"strings"

	companystore "github.com/dalemusser/valids/internal/app/store/companies"
	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/passwords"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /users.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)

	var in createUserInput
	if !formutil.Bind(w, r, &in) {
		return
	}

	if len(strings.TrimSpace(in.Username)) < 3 {
		respond.BadRequest(w, "Username must be at least 3 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u := models.User{
		Username:        in.Username,
		Email:           in.Email,
		Role:            in.Role,
		ExperienceYears: in.ExperienceYears,
		IsActive:        in.IsActive == nil || *in.IsActive,
	}

	if in.CompanyID != nil {
		cid, _ := models.ParseObjectID(*in.CompanyID)
		if !formutil.RequireRef(ctx, w, h.Log, companystore.New(h.DB).Exists, cid, "Company not found") {
			return
		}
		ref := models.CompanyID(cid.Hex())
		u.CompanyID = &ref
	}

	hash, err := passwords.Hash(in.Password)
	if passwords.IsPolicyError(err) {
		respond.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("users: hash password failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	u.Password = hash

	created, err := userstore.New(h.DB).Create(ctx, u)
	if errors.Is(err, userstore.ErrDuplicateUser) {
		respond.BadRequest(w, "Username or email already exists")
		return
	}
	if err != nil {
		h.Log.Error("users: create failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	h.AuditLog.UserCreated(ctx, r, actor, created)
	respond.JSON(w, http.StatusCreated, created)
}
