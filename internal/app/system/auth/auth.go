// Package auth authenticates API requests with bearer access tokens and gates
// routes by role.
//
// Authenticate verifies the token, then reloads the subject user from the
// database on every request so role changes and deactivation take effect
// immediately. The loaded user is placed in the request context; handlers
// read it with CurrentUser.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.uber.org/zap"
)

// UserFetcher loads a user by id. It returns (nil, nil) when no such user exists.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) (*models.User, error)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user and whether one is present.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*models.User)
	return u, ok && u != nil
}

// WithUser returns ctx carrying u as the current user.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

// Middleware holds what Authenticate needs.
type Middleware struct {
	Tokens *TokenIssuer
	Users  UserFetcher
	Log    *zap.Logger
}

// NewMiddleware constructs the bearer-token middleware.
func NewMiddleware(tokens *TokenIssuer, users UserFetcher, logger *zap.Logger) *Middleware {
	return &Middleware{Tokens: tokens, Users: users, Log: logger}
}

// Authenticate rejects the request with 401 unless it carries a valid bearer
// token for an existing, active user.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			respond.Unauthorized(w, "Not authenticated")
			return
		}
		claims, err := m.Tokens.Parse(raw)
		if err != nil {
			respond.Unauthorized(w, "Invalid token")
			return
		}
		if !models.ValidID(claims.Subject) {
			respond.Unauthorized(w, "Invalid token")
			return
		}

		u, err := m.Users.FetchUser(r.Context(), claims.Subject)
		if err != nil {
			m.Log.Error("auth: load user failed", zap.String("user_id", claims.Subject), zap.Error(err))
			respond.Unauthorized(w, "Authentication failed")
			return
		}
		if u == nil {
			respond.Unauthorized(w, "User not found")
			return
		}
		if !u.IsActive {
			respond.Unauthorized(w, "User account is inactive")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(h[7:])
	return tok, tok != ""
}

// RequireRoles allows the request through only when the current user has one
// of roles: 401 when nobody is authenticated, 403 otherwise.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				respond.Unauthorized(w, "Not authenticated")
				return
			}
			if _, allowed := set[u.Role]; !allowed {
				respond.Forbidden(w, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Role tiers. Each tier admits every role above it.
var (
	RequireSuperAdmin = RequireRoles(models.RoleSuperAdmin)
	RequireAuditor    = RequireRoles(models.RoleSuperAdmin, models.RoleAuditor)
	RequireSpectator  = RequireRoles(models.RoleSuperAdmin, models.RoleAuditor, models.RoleSpectator)
	RequireEmployee   = RequireRoles(models.AllRoles...)
)
