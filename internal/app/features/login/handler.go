// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/auditlog"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/passwords"
	"github.com/dalemusser/valids/internal/app/system/ratelimit"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	AuditLog *auditlog.Logger
	Tokens   *auth.TokenIssuer
	Limiter  *ratelimit.LoginLimiter // nil disables throttling
}

func NewHandler(db *mongo.Database, tokens *auth.TokenIssuer, limiter *ratelimit.LoginLimiter, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		AuditLog: audit,
		Tokens:   tokens,
		Limiter:  limiter,
	}
}

// loginInput accepts the login name as either "username" or "email"; both
// are matched against username and email.
type loginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in loginInput) login() string {
	if s := strings.TrimSpace(in.Username); s != "" {
		return s
	}
	return strings.TrimSpace(in.Email)
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        models.User `json:"user"`
}

const badCredentials = "Incorrect username or password"

// HandleLogin handles POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := respond.DecodeJSON(r, &in); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	loginID := in.login()
	if loginID == "" {
		respond.BadRequest(w, "Username or email is required")
		return
	}
	if in.Password == "" {
		respond.BadRequest(w, "Password is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, loginID); !ok {
			h.AuditLog.LoginFailedRateLimit(ctx, r, loginID)
			respond.Error(w, http.StatusTooManyRequests, reason)
			return
		}
	}

	users := userstore.New(h.DB)
	u, err := users.GetByLogin(ctx, loginID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.AuditLog.LoginFailedUserNotFound(ctx, r, loginID)
		respond.Unauthorized(w, badCredentials)
		return
	case err != nil:
		h.Log.Error("login: find user failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	if !passwords.Check(u.Password, in.Password) {
		h.AuditLog.LoginFailedWrongPassword(ctx, r, u)
		respond.Unauthorized(w, badCredentials)
		return
	}

	/*── inactive accounts cannot sign in ─────────────────────────────────*/

	if !u.IsActive {
		h.AuditLog.LoginFailedUserInactive(ctx, r, u)
		respond.Unauthorized(w, "User account is inactive")
		return
	}

	/*── upgrade legacy or weak hashes while we hold the plaintext ────────*/

	if passwords.NeedsRehash(u.Password) {
		h.rehash(ctx, r, users, u, in.Password)
	}

	token, exp, err := h.Tokens.Issue(u)
	if err != nil {
		h.Log.Error("login: issue token failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		respond.Internal(w)
		return
	}

	if h.Limiter != nil {
		h.Limiter.ResetLogin(loginID)
	}
	h.AuditLog.LoginSuccess(ctx, r, u)

	respond.OK(w, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(time.Until(exp).Round(time.Second) / time.Second),
		User:        u,
	})
}

// rehash replaces u's stored hash with a fresh bcrypt hash. Failures are
// logged and do not fail the login.
func (h *Handler) rehash(ctx context.Context, r *http.Request, users *userstore.Store, u models.User, password string) {
	hash, err := passwords.Hash(password)
	if err != nil {
		// Legacy passwords may predate the length rule.
		h.Log.Warn("login: rehash skipped", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		return
	}
	if err := users.SetPassword(ctx, u.ID, hash); err != nil {
		h.Log.Error("login: rehash failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		return
	}
	h.AuditLog.PasswordRehashed(ctx, r, u)
}

// ServeMe handles GET /auth/me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		respond.Unauthorized(w, "Not authenticated")
		return
	}
	respond.OK(w, u)
}
