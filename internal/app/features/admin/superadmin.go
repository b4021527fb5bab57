// internal/app/features/admin/superadmin.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/passwords"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreateSuperAdmin handles POST /admin/create-superadmin.
func (h *Handler) HandleCreateSuperAdmin(w http.ResponseWriter, r *http.Request) {
	var in superAdminInput
	if err := respond.DecodeJSON(r, &in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users := userstore.New(h.DB)
	exists, err := users.ExistsWithRole(ctx, models.RoleSuperAdmin)
	if err != nil {
		h.Log.Error("admin: superadmin lookup failed", zap.Error(err))
		respond.Internal(w)
		return
	}
	if exists {
		respond.BadRequest(w, "Superadmin already exists in the system")
		return
	}

	if !formutil.Validate(w, in) {
		return
	}
	if len(strings.TrimSpace(in.Username)) < 3 {
		respond.BadRequest(w, "Username must be at least 3 characters")
		return
	}

	hash, err := passwords.Hash(in.Password)
	if passwords.IsPolicyError(err) {
		respond.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("admin: hash password failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	created, err := users.Create(ctx, models.User{
		Username: in.Username,
		Email:    in.Email,
		Role:     models.RoleSuperAdmin,
		Password: hash,
		IsActive: true,
	})
	if errors.Is(err, userstore.ErrDuplicateUser) {
		respond.BadRequest(w, "Username or email already exists")
		return
	}
	if err != nil {
		h.Log.Error("admin: create superadmin failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	h.Log.Info("superadmin created", zap.String("username", created.Username))
	h.AuditLog.SuperAdminCreated(ctx, r, nil, created)
	respond.JSON(w, http.StatusCreated, created)
}
