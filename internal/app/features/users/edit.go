// internal/app/features/users/edit.go
package users

import (
	"context"
	"errors"
	"net/http"

	companystore "github.com/dalemusser/valids/internal/app/store/companies"
	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/passwords"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleEdit handles PUT /users/{id}. Only supplied fields change; a new
// password is hashed before it is stored.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id, ok := formutil.PathID(w, r, "id", "user")
	if !ok {
		return
	}

	var in editUserInput
	if !formutil.Bind(w, r, &in) {
		return
	}

	p := models.UserPatch{
		Username:        formutil.Trim(in.Username),
		Email:           formutil.Trim(in.Email),
		Role:            in.Role,
		ExperienceYears: in.ExperienceYears,
		IsActive:        in.IsActive,
	}
	if in.CompanyID != nil {
		cid, _ := models.ParseObjectID(*in.CompanyID)
		ref := models.CompanyID(cid.Hex())
		p.CompanyID = &ref
	}
	if in.Password != nil {
		hash, err := passwords.Hash(*in.Password)
		if passwords.IsPolicyError(err) {
			respond.BadRequest(w, err.Error())
			return
		}
		if err != nil {
			h.Log.Error("users: hash password failed", zap.Error(err))
			respond.Internal(w)
			return
		}
		p.Password = &hash
	}
	if p.Username != nil && len(*p.Username) < 3 {
		respond.BadRequest(w, "Username must be at least 3 characters")
		return
	}
	if p.Empty() {
		respond.BadRequest(w, "No fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := userstore.New(h.DB)

	if p.CompanyID != nil {
		cid, _ := p.CompanyID.ObjectID()
		if !formutil.RequireRef(ctx, w, h.Log, companystore.New(h.DB).Exists, cid, "Company not found") {
			return
		}
	}

	if p.Username != nil || p.Email != nil {
		var username, email string
		if p.Username != nil {
			username = *p.Username
		}
		if p.Email != nil {
			email = *p.Email
		}
		taken, err := store.ExistsByUsernameOrEmail(ctx, username, email, id)
		if err != nil {
			h.Log.Error("users: duplicate check failed", zap.Error(err))
			respond.Internal(w)
			return
		}
		if taken {
			respond.BadRequest(w, "Username or email already exists")
			return
		}
	}

	updated, err := store.Update(ctx, id, p)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		respond.NotFound(w, "User not found")
		return
	case errors.Is(err, userstore.ErrDuplicateUser):
		respond.BadRequest(w, "Username or email already exists")
		return
	case err != nil:
		h.Log.Error("users: update failed", zap.String("user_id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}

	h.AuditLog.UserUpdated(ctx, r, actor, updated, changedFields(p))
	respond.OK(w, updated)
}

func changedFields(p models.UserPatch) []string {
	var fields []string
	if p.Username != nil {
		fields = append(fields, "username")
	}
	if p.Email != nil {
		fields = append(fields, "email")
	}
	if p.Role != nil {
		fields = append(fields, "roletype")
	}
	if p.Password != nil {
		fields = append(fields, "password")
	}
	if p.CompanyID != nil {
		fields = append(fields, "company_id")
	}
	if p.ExperienceYears != nil {
		fields = append(fields, "experience_years")
	}
	if p.IsActive != nil {
		fields = append(fields, "is_active")
	}
	return fields
}
