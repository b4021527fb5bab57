package admin_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/valids/internal/app/features/admin"
	"github.com/dalemusser/valids/internal/app/store/audit"
	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/auditlog"
	"github.com/dalemusser/valids/internal/app/system/passwords"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/dalemusser/valids/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*admin.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	audits := auditlog.New(audit.New(db), logger, auditlog.Config{Auth: auditlog.DestDB, Admin: auditlog.DestDB})
	return admin.NewHandler(db, audits, logger), testutil.NewFixtures(t, db)
}

// passthrough stands in for the bearer middleware; test requests carry
// their user in the context already.
func passthrough(next http.Handler) http.Handler { return next }

func serve(h *admin.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r := chi.NewRouter()
	r.Mount("/admin", admin.Routes(h, passthrough))
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateSuperAdmin(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	bad := []struct {
		name   string
		body   map[string]any
		detail string
	}{
		{"short username", map[string]any{"username": "ab", "email": "a@b.com", "password": "secret1"}, "Username must be at least 3 characters"},
		{"short password", map[string]any{"username": "root", "email": "a@b.com", "password": "123"}, "Password must be at least 6 characters"},
		{"password over bcrypt limit", map[string]any{"username": "root", "email": "a@b.com", "password": strings.Repeat("p", 90)}, "Password must be at most 72 bytes"},
		{"bad email", map[string]any{"username": "root", "email": "nope", "password": "secret1"}, "Email must be a valid email address"},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, testutil.NewJSONRequest(t, http.MethodPost, "/admin/create-superadmin", tt.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.detail, testutil.Detail(t, rec))
		})
	}

	fx.CreateUser(ctx, "taken", models.RoleEmployee, "")
	rec := serve(h, testutil.NewJSONRequest(t, http.MethodPost, "/admin/create-superadmin",
		map[string]any{"username": "taken", "email": "new@b.com", "password": "secret1"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username or email already exists", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewJSONRequest(t, http.MethodPost, "/admin/create-superadmin",
		map[string]any{"username": "root", "email": "Root@Example.com", "password": "secret1"}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got := testutil.DecodeBody[map[string]any](t, rec)
	assert.Equal(t, models.RoleSuperAdmin, got["roletype"])
	assert.Equal(t, "root@example.com", got["email"])
	assert.NotContains(t, got, "password")

	stored, err := userstore.New(fx.DB()).GetByLogin(ctx, "root")
	require.NoError(t, err)
	assert.True(t, passwords.Check(stored.Password, "secret1"))

	rec = serve(h, testutil.NewJSONRequest(t, http.MethodPost, "/admin/create-superadmin",
		map[string]any{"username": "second", "email": "s@b.com", "password": "secret1"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Superadmin already exists in the system", testutil.Detail(t, rec))
}

type statusBody struct {
	SystemStatus    string           `json:"system_status"`
	UserCounts      map[string]int64 `json:"user_counts"`
	CompanyCount    int64            `json:"company_count"`
	ISOCount        int64            `json:"iso_count"`
	SubmissionCount int64            `json:"submission_count"`
	TotalUsers      int64            `json:"total_users"`
}

func TestSystemStatus(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	root := fx.CreateSuperAdmin(ctx, "root")
	chain := fx.CreateChain(ctx, "sec")
	company := fx.CreateCompany(ctx, "Acme", root.UserID(), models.ISOID(chain.ISO.ID.Hex()))
	cid := models.CompanyID(company.ID.Hex())
	emp := fx.CreateUser(ctx, "emp", models.RoleEmployee, cid)
	fx.CreateUser(ctx, "aud", models.RoleAuditor, cid)
	fx.CreateSubmission(ctx, emp.UserID(), cid, models.ISOID(chain.ISO.ID.Hex()), models.StatusDraft, nil)

	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/admin/system-status", nil, root))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := testutil.DecodeBody[statusBody](t, rec)

	assert.Equal(t, "operational", got.SystemStatus)
	assert.Equal(t, map[string]int64{"superadmin": 1, "auditor": 1, "spectator": 0, "employee": 1}, got.UserCounts)
	assert.EqualValues(t, 1, got.CompanyCount)
	assert.EqualValues(t, 1, got.ISOCount)
	assert.EqualValues(t, 1, got.SubmissionCount)
	assert.EqualValues(t, 3, got.TotalUsers)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/admin/system-status", nil, emp))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUsersByRole(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	root := fx.CreateSuperAdmin(ctx, "root")
	fx.CreateUser(ctx, "aud1", models.RoleAuditor, "")
	fx.CreateUser(ctx, "aud2", models.RoleAuditor, "")

	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/admin/users/role/auditor", nil, root))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DecodeBody[[]models.User](t, rec), 2)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/admin/users/role/boss", nil, root))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid role. Must be one of: superadmin, auditor, spectator, employee", testutil.Detail(t, rec))
}

func TestResetPassword(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	root := fx.CreateSuperAdmin(ctx, "root")
	emp := fx.CreateUser(ctx, "emp", models.RoleEmployee, "")
	target := "/admin/reset-password/" + emp.ID.Hex()

	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, target, map[string]any{"new_password": "123"}, root))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at least 6 characters", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, target, map[string]any{"new_password": strings.Repeat("p", 73)}, root))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at most 72 bytes", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, target+"?new_password="+strings.Repeat("q", 100), nil, root))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at most 72 bytes", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, target, map[string]any{"new_password": "fresh-pass"}, root))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Password reset successfully", testutil.DecodeBody[map[string]string](t, rec)["message"])

	stored, err := userstore.New(fx.DB()).GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, passwords.Check(stored.Password, "fresh-pass"))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost,
		"/admin/reset-password/"+primitive.NewObjectID().Hex()+"?new_password=another1", nil, root))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/admin/reset-password/bad", nil, root))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid user ID format", testutil.Detail(t, rec))

	n, err := fx.DB().Collection("audit_events").CountDocuments(ctx, bson.M{"event_type": audit.EventPasswordReset})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDeactivateUser(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	root := fx.CreateSuperAdmin(ctx, "root")
	emp := fx.CreateUser(ctx, "emp", models.RoleEmployee, "")

	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/admin/deactivate-user/"+root.ID.Hex(), nil, root))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Cannot deactivate your own account", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/admin/deactivate-user/"+emp.ID.Hex(), nil, root))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "User deactivated successfully", testutil.DecodeBody[map[string]string](t, rec)["message"])

	stored, err := userstore.New(fx.DB()).GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/admin/deactivate-user/"+primitive.NewObjectID().Hex(), nil, root))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
