package assignments_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/valids/internal/app/features/assignments"
	"github.com/dalemusser/valids/internal/app/store/audit"
	"github.com/dalemusser/valids/internal/app/system/auditlog"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/dalemusser/valids/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type env struct {
	h       *assignments.Handler
	fx      *testutil.Fixtures
	admin   models.User
	chain   testutil.Chain
	company models.Company
	auditor models.User
	emp     models.User
}

func setup(t *testing.T) env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	audits := auditlog.New(audit.New(db), logger, auditlog.Config{Auth: auditlog.DestDB, Admin: auditlog.DestDB})
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	e := env{h: assignments.NewHandler(db, audits, logger), fx: fx}
	e.admin = fx.CreateSuperAdmin(ctx, "root")
	e.chain = fx.CreateChain(ctx, "sec")
	e.company = fx.CreateCompany(ctx, "Acme", e.admin.UserID(), models.ISOID(e.chain.ISO.ID.Hex()))
	cid := models.CompanyID(e.company.ID.Hex())
	e.auditor = fx.CreateUser(ctx, "aud", models.RoleAuditor, cid)
	e.emp = fx.CreateUser(ctx, "emp", models.RoleEmployee, cid)
	return e
}

func serve(h *assignments.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r := chi.NewRouter()
	r.Mount("/assignments", assignments.Routes(h))
	r.ServeHTTP(rec, req)
	return rec
}

func qid(q models.Question) models.QuestionID { return models.QuestionID(q.ID.Hex()) }

func TestHandleAssign(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	body := map[string]any{
		"user_id":      e.emp.ID.Hex(),
		"question_ids": []string{e.chain.Question.ID.Hex()},
	}
	rec := serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/assignments/questions/assign", body, e.auditor))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := testutil.DecodeBody[map[string]any](t, rec)
	assert.Equal(t, "Questions assigned successfully", got["message"])
	assert.EqualValues(t, 1, got["assigned_questions"])
	assert.True(t, models.ValidID(got["assignment_id"].(string)))

	n, err := e.fx.DB().Collection("audit_events").CountDocuments(ctx, bson.M{"event_type": audit.EventQuestionsAssigned})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestHandleAssign_UserIDFromQuery(t *testing.T) {
	e := setup(t)

	body := map[string]any{"question_ids": []string{e.chain.Question.ID.Hex()}}
	rec := serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodPost,
		"/assignments/questions/assign?user_id="+e.emp.ID.Hex(), body, e.admin))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHandleAssign_Rejections(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	other := e.fx.CreateCompany(ctx, "Other", e.admin.UserID(), models.ISOID(e.chain.ISO.ID.Hex()))
	outsider := e.fx.CreateUser(ctx, "outsider", models.RoleEmployee, models.CompanyID(other.ID.Hex()))
	ghost := primitive.NewObjectID().Hex()

	tests := []struct {
		name   string
		actor  models.User
		body   map[string]any
		code   int
		detail string
	}{
		{"bad user id", e.auditor, map[string]any{"user_id": "x", "question_ids": []string{e.chain.Question.ID.Hex()}}, http.StatusBadRequest, "Invalid user ID format"},
		{"bad question id", e.auditor, map[string]any{"user_id": e.emp.ID.Hex(), "question_ids": []string{"nope"}}, http.StatusBadRequest, "Invalid question ID: nope"},
		{"unknown question", e.auditor, map[string]any{"user_id": e.emp.ID.Hex(), "question_ids": []string{e.chain.Question.ID.Hex(), ghost}}, http.StatusNotFound, "Question not found: " + ghost},
		{"unknown user", e.auditor, map[string]any{"user_id": ghost, "question_ids": []string{e.chain.Question.ID.Hex()}}, http.StatusNotFound, "User not found"},
		{"other company user", e.auditor, map[string]any{"user_id": outsider.ID.Hex(), "question_ids": []string{e.chain.Question.ID.Hex()}}, http.StatusForbidden, "Access denied to this user's data"},
		{"employee forbidden", e.emp, map[string]any{"user_id": e.emp.ID.Hex(), "question_ids": []string{e.chain.Question.ID.Hex()}}, http.StatusForbidden, "Insufficient permissions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/assignments/questions/assign", tt.body, tt.actor))
			require.Equal(t, tt.code, rec.Code, rec.Body.String())
			assert.Equal(t, tt.detail, testutil.Detail(t, rec))
		})
	}
}

func TestServeRoleBasedQuestions(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	extra := e.fx.CreateQuestion(ctx, "extra?", models.FieldID(e.chain.Field.ID.Hex()))
	get := func(u models.User, target string) []models.Question {
		t.Helper()
		rec := serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodGet, target, nil, u))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return testutil.DecodeBody[[]models.Question](t, rec)
	}
	base := "/assignments/questions/role-based?user_id=" + e.emp.ID.Hex()

	// No assignments: every active question.
	assert.Len(t, get(e.emp, base), 2)

	// With iso_id: the question behind the ISO's control.
	byISO := get(e.emp, base+"&iso_id="+e.chain.ISO.ID.Hex())
	require.Len(t, byISO, 1)
	assert.Equal(t, e.chain.Question.ID, byISO[0].ID)

	// Assigned questions only.
	e.fx.CreateAssignment(ctx, e.emp.UserID(), e.auditor.UserID(), qid(extra))
	assigned := get(e.auditor, base)
	require.Len(t, assigned, 1)
	assert.Equal(t, extra.ID, assigned[0].ID)

	// Assigned set does not include the ISO's question.
	assert.Empty(t, get(e.emp, base+"&iso_id="+e.chain.ISO.ID.Hex()))

	rec := serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodGet,
		base+"&iso_id="+primitive.NewObjectID().Hex(), nil, e.emp))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ISO standard not found", testutil.Detail(t, rec))

	rec = serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodGet,
		"/assignments/questions/role-based?user_id=bad", nil, e.emp))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid user ID format", testutil.Detail(t, rec))
}

func TestServeRoleBasedQuestions_OtherCompany(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	other := e.fx.CreateCompany(ctx, "Other", e.admin.UserID(), models.ISOID(e.chain.ISO.ID.Hex()))
	outsider := e.fx.CreateUser(ctx, "outsider", models.RoleEmployee, models.CompanyID(other.ID.Hex()))

	rec := serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodGet,
		"/assignments/questions/role-based?user_id="+e.emp.ID.Hex(), nil, outsider))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied to this user's data", testutil.Detail(t, rec))
}

func TestServeCompanyControlsAndUsers(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodGet,
		"/assignments/controls/company/"+e.company.ID.Hex(), nil, e.auditor))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	controls := testutil.DecodeBody[[]models.Control](t, rec)
	require.Len(t, controls, 1)
	assert.Equal(t, e.chain.Control.ID, controls[0].ID)

	rec = serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodGet,
		"/assignments/controls/company/"+primitive.NewObjectID().Hex(), nil, e.admin))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Company not found", testutil.Detail(t, rec))

	rec = serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodGet,
		"/assignments/users/company/"+e.company.ID.Hex(), nil, e.auditor))
	require.Equal(t, http.StatusOK, rec.Code)
	users := testutil.DecodeBody[[]map[string]any](t, rec)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotContains(t, u, "password")
	}

	other := e.fx.CreateCompany(ctx, "Other", e.admin.UserID(), models.ISOID(e.chain.ISO.ID.Hex()))
	rec = serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodGet,
		"/assignments/users/company/"+other.ID.Hex(), nil, e.auditor))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied to this company", testutil.Detail(t, rec))
}

func TestAssignmentCRUD(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	other := e.fx.CreateCompany(ctx, "Other", e.admin.UserID(), models.ISOID(e.chain.ISO.ID.Hex()))
	otherAuditor := e.fx.CreateUser(ctx, "aud2", models.RoleAuditor, models.CompanyID(other.ID.Hex()))
	a := e.fx.CreateAssignment(ctx, e.emp.UserID(), e.auditor.UserID(), qid(e.chain.Question))
	target := "/assignments/" + a.ID.Hex()

	rec := serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/assignments/", nil, e.auditor))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DecodeBody[[]models.QuestionAssignment](t, rec), 1)

	rec = serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/assignments/", nil, otherAuditor))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, testutil.DecodeBody[[]models.QuestionAssignment](t, rec))

	rec = serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodGet, target, nil, otherAuditor))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied to this assignment", testutil.Detail(t, rec))

	rec = serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodPut, target, map[string]any{}, e.auditor))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No fields to update", testutil.Detail(t, rec))

	rec = serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodPut, target, map[string]any{"is_active": false}, e.auditor))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := testutil.DecodeBody[models.QuestionAssignment](t, rec)
	assert.False(t, updated.IsActive)
	assert.NotNil(t, updated.UpdatedAt)

	rec = serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodPut, target, map[string]any{"question_ids": []string{"zz"}}, e.auditor))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid question ID: zz", testutil.Detail(t, rec))

	rec = serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodDelete, target, nil, e.auditor))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(e.h, testutil.NewAuthenticatedRequest(t, http.MethodGet, target, nil, e.admin))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Assignment not found", testutil.Detail(t, rec))
}
