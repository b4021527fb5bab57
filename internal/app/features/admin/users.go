// internal/app/features/admin/users.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/app/system/passwords"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeUsersByRole handles GET /admin/users/role/{role}: active users holding role.
func (h *Handler) ServeUsersByRole(w http.ResponseWriter, r *http.Request) {
	role := chi.URLParam(r, "role")
	if !models.IsValidRole(role) {
		respond.BadRequest(w, "Invalid role. Must be one of: "+strings.Join(models.AllRoles, ", "))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := userstore.New(h.DB).ListActiveByRole(ctx, role)
	if err != nil {
		h.Log.Error("admin: users by role failed", zap.String("role", role), zap.Error(err))
		respond.Internal(w)
		return
	}
	respond.OK(w, list)
}

// HandleResetPassword handles POST /admin/reset-password/{id}. The new
// password comes from the JSON body or the new_password query parameter.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id, ok := formutil.PathID(w, r, "id", "user")
	if !ok {
		return
	}

	var in resetPasswordInput
	if qp := query.Get(r, "new_password"); qp != "" {
		in.NewPassword = qp
	} else if err := respond.DecodeJSON(r, &in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if !formutil.Validate(w, in) {
		return
	}

	hash, err := passwords.Hash(in.NewPassword)
	if passwords.IsPolicyError(err) {
		respond.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("admin: hash password failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).Update(ctx, id, models.UserPatch{Password: &hash})
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("admin: reset password failed", zap.String("user_id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}

	h.AuditLog.PasswordReset(ctx, r, actor, u)
	respond.Message(w, "Password reset successfully")
}

// HandleDeactivate handles POST /admin/deactivate-user/{id}. Superadmins
// cannot deactivate themselves.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id, ok := formutil.PathID(w, r, "id", "user")
	if !ok {
		return
	}
	if actor.ID == id {
		respond.Forbidden(w, "Cannot deactivate your own account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	inactive := false
	u, err := userstore.New(h.DB).Update(ctx, id, models.UserPatch{IsActive: &inactive})
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("admin: deactivate failed", zap.String("user_id", id.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}

	h.AuditLog.UserDeactivated(ctx, r, actor, u)
	respond.Message(w, "User deactivated successfully")
}
