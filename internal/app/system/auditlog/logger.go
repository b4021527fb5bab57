// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/valids/internal/app/store/audit"
	"github.com/dalemusser/valids/internal/app/system/ratelimit"
	"github.com/dalemusser/valids/internal/domain/models"
	"go.uber.org/zap"
)

// Destinations accepted by Config fields.
const (
	DestAll = "all" // MongoDB + zap
	DestDB  = "db"  // MongoDB only
	DestLog = "log" // zap only
	DestOff = "off"
)

// ValidDest reports whether s is a known destination.
func ValidDest(s string) bool {
	switch s {
	case DestAll, DestDB, DestLog, DestOff:
		return true
	}
	return false
}

// Config selects where each category of events is written.
type Config struct {
	// Auth covers login attempts and password rehashing.
	Auth string
	// Admin covers account, company, assignment and submission review actions.
	Admin string
}

// Logger writes audit events to MongoDB and zap according to Config.
// A nil *Logger is valid and discards everything.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != "" {
		fields = append(fields, zap.String("user_id", event.UserID))
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.CompanyID != "" {
		fields = append(fields, zap.String("company_id", event.CompanyID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records event according to the configured destination for its category.
// Storage failures are logged and otherwise ignored.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := DestAll
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin, audit.CategoryReview:
		setting = l.config.Admin
	}
	if setting == DestOff {
		return
	}
	if setting == DestAll || setting == DestLog {
		l.logToZap(event)
	}
	if (setting == DestAll || setting == DestDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

func base(r *http.Request, category, eventType string, actor *models.User) audit.Event {
	e := audit.Event{
		Category:  category,
		EventType: eventType,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	}
	if actor != nil {
		e.ActorID = actor.ID.Hex()
	}
	return e
}

// --- Authentication events ---

func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, u models.User) {
	e := base(r, audit.CategoryAuth, audit.EventLoginSuccess, nil)
	e.UserID = u.ID.Hex()
	e.CompanyID = string(u.CompanyRef())
	e.Details = map[string]string{"username": u.Username}
	l.Log(ctx, e)
}

func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, attempted string) {
	e := base(r, audit.CategoryAuth, audit.EventLoginFailedUserNotFound, nil)
	e.Success = false
	e.FailureReason = "user not found"
	e.Details = map[string]string{"attempted_login": attempted}
	l.Log(ctx, e)
}

func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, u models.User) {
	e := base(r, audit.CategoryAuth, audit.EventLoginFailedWrongPassword, nil)
	e.UserID = u.ID.Hex()
	e.CompanyID = string(u.CompanyRef())
	e.Success = false
	e.FailureReason = "wrong password"
	l.Log(ctx, e)
}

func (l *Logger) LoginFailedUserInactive(ctx context.Context, r *http.Request, u models.User) {
	e := base(r, audit.CategoryAuth, audit.EventLoginFailedUserInactive, nil)
	e.UserID = u.ID.Hex()
	e.CompanyID = string(u.CompanyRef())
	e.Success = false
	e.FailureReason = "user inactive"
	l.Log(ctx, e)
}

func (l *Logger) LoginFailedRateLimit(ctx context.Context, r *http.Request, attempted string) {
	e := base(r, audit.CategoryAuth, audit.EventLoginFailedRateLimit, nil)
	e.Success = false
	e.FailureReason = "rate limit exceeded"
	e.Details = map[string]string{"attempted_login": attempted}
	l.Log(ctx, e)
}

// PasswordRehashed records a legacy digest upgraded to bcrypt at login.
func (l *Logger) PasswordRehashed(ctx context.Context, r *http.Request, u models.User) {
	e := base(r, audit.CategoryAuth, audit.EventPasswordRehashed, nil)
	e.UserID = u.ID.Hex()
	l.Log(ctx, e)
}

// --- Admin events ---

func (l *Logger) UserCreated(ctx context.Context, r *http.Request, actor *models.User, u models.User) {
	e := base(r, audit.CategoryAdmin, audit.EventUserCreated, actor)
	e.UserID = u.ID.Hex()
	e.CompanyID = string(u.CompanyRef())
	e.Details = map[string]string{"username": u.Username, "role": u.Role}
	l.Log(ctx, e)
}

// UserUpdated records which fields changed, never their values.
func (l *Logger) UserUpdated(ctx context.Context, r *http.Request, actor *models.User, u models.User, fields []string) {
	e := base(r, audit.CategoryAdmin, audit.EventUserUpdated, actor)
	e.UserID = u.ID.Hex()
	e.CompanyID = string(u.CompanyRef())
	e.Details = map[string]string{"fields": strings.Join(fields, ",")}
	l.Log(ctx, e)
}

func (l *Logger) UserDeleted(ctx context.Context, r *http.Request, actor *models.User, userID string) {
	e := base(r, audit.CategoryAdmin, audit.EventUserDeleted, actor)
	e.UserID = userID
	l.Log(ctx, e)
}

func (l *Logger) UserDeactivated(ctx context.Context, r *http.Request, actor *models.User, u models.User) {
	e := base(r, audit.CategoryAdmin, audit.EventUserDeactivated, actor)
	e.UserID = u.ID.Hex()
	e.CompanyID = string(u.CompanyRef())
	l.Log(ctx, e)
}

func (l *Logger) PasswordReset(ctx context.Context, r *http.Request, actor *models.User, u models.User) {
	e := base(r, audit.CategoryAdmin, audit.EventPasswordReset, actor)
	e.UserID = u.ID.Hex()
	e.CompanyID = string(u.CompanyRef())
	l.Log(ctx, e)
}

// SuperAdminCreated records the bootstrap superadmin. actor is nil for the
// unauthenticated bootstrap route and for startup seeding.
func (l *Logger) SuperAdminCreated(ctx context.Context, r *http.Request, actor *models.User, u models.User) {
	e := base(r, audit.CategoryAdmin, audit.EventSuperAdminCreated, actor)
	e.UserID = u.ID.Hex()
	e.Details = map[string]string{"username": u.Username}
	l.Log(ctx, e)
}

func (l *Logger) CompanyCreated(ctx context.Context, r *http.Request, actor *models.User, c models.Company) {
	e := base(r, audit.CategoryAdmin, audit.EventCompanyCreated, actor)
	e.CompanyID = c.ID.Hex()
	e.UserID = string(c.UserID)
	e.Details = map[string]string{"company_name": c.Name}
	l.Log(ctx, e)
}

func (l *Logger) CompanyDeleted(ctx context.Context, r *http.Request, actor *models.User, companyID string) {
	e := base(r, audit.CategoryAdmin, audit.EventCompanyDeleted, actor)
	e.CompanyID = companyID
	l.Log(ctx, e)
}

func (l *Logger) QuestionsAssigned(ctx context.Context, r *http.Request, actor *models.User, target models.User, a models.QuestionAssignment) {
	e := base(r, audit.CategoryAdmin, audit.EventQuestionsAssigned, actor)
	e.UserID = target.ID.Hex()
	e.CompanyID = string(target.CompanyRef())
	e.Details = map[string]string{
		"assignment_id": a.ID.Hex(),
		"count":         strconv.Itoa(len(a.QuestionIDs)),
	}
	l.Log(ctx, e)
}

func (l *Logger) AssignmentDeleted(ctx context.Context, r *http.Request, actor *models.User, a models.QuestionAssignment) {
	e := base(r, audit.CategoryAdmin, audit.EventAssignmentDeleted, actor)
	e.UserID = string(a.UserID)
	e.Details = map[string]string{"assignment_id": a.ID.Hex()}
	l.Log(ctx, e)
}

// --- Review events ---

func (l *Logger) SubmissionStatusChanged(ctx context.Context, r *http.Request, actor *models.User, s models.Submission, from models.SubmissionStatus) {
	e := base(r, audit.CategoryReview, audit.EventSubmissionStatus, actor)
	e.UserID = string(s.UserID)
	e.CompanyID = string(s.CompanyID)
	e.Details = map[string]string{
		"submission_id": s.ID.Hex(),
		"from":          string(from),
		"to":            string(s.Status),
	}
	l.Log(ctx, e)
}

func (l *Logger) SubmissionDeleted(ctx context.Context, r *http.Request, actor *models.User, s models.Submission) {
	e := base(r, audit.CategoryReview, audit.EventSubmissionDeleted, actor)
	e.UserID = string(s.UserID)
	e.CompanyID = string(s.CompanyID)
	e.Details = map[string]string{"submission_id": s.ID.Hex()}
	l.Log(ctx, e)
}
