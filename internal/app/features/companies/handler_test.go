package companies_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/valids/internal/app/features/companies"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/dalemusser/valids/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*companies.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return companies.NewHandler(db, nil, zap.NewNop()), testutil.NewFixtures(t, db)
}

func serve(h *companies.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r := chi.NewRouter()
	r.Mount("/companies", companies.Routes(h))
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleCreate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateSuperAdmin(ctx, "root")
	owner := fx.CreateUser(ctx, "owner", models.RoleAuditor, "")
	chain := fx.CreateChain(ctx, "c")

	body := map[string]any{
		"company_name":        "  Acme  ",
		"company_description": "<b>Widgets</b><script>alert(1)</script>",
		"user_id":             owner.ID.Hex(),
		"iso_id":              chain.ISO.ID.Hex(),
	}
	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/companies/", body, admin))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	got := testutil.DecodeBody[models.Company](t, rec)
	assert.Equal(t, "Acme", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Widgets", *got.Description)
	assert.Equal(t, owner.UserID(), got.UserID)
	assert.Equal(t, models.ISOID(chain.ISO.ID.Hex()), got.ISOID)
	assert.True(t, got.IsActive)
}

func TestHandleCreate_PlainTextDescriptionRoundTrips(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateSuperAdmin(ctx, "root")
	owner := fx.CreateUser(ctx, "owner", models.RoleAuditor, "")
	chain := fx.CreateChain(ctx, "c")

	desc := `R&D for Tom's "core" <2 sites`
	body := map[string]any{
		"company_name":        "Acme",
		"company_description": desc,
		"user_id":             owner.ID.Hex(),
		"iso_id":              chain.ISO.ID.Hex(),
	}
	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/companies/", body, admin))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := testutil.DecodeBody[models.Company](t, rec)
	require.NotNil(t, created.Description)
	assert.Equal(t, desc, *created.Description)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/companies/"+created.ID.Hex(), nil, admin))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	fetched := testutil.DecodeBody[models.Company](t, rec)
	require.NotNil(t, fetched.Description)
	assert.Equal(t, desc, *fetched.Description)
}

func TestHandleCreate_References(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateSuperAdmin(ctx, "root")
	owner := fx.CreateUser(ctx, "owner", models.RoleAuditor, "")
	chain := fx.CreateChain(ctx, "c")
	ghost := primitive.NewObjectID().Hex()

	tests := []struct {
		name   string
		body   map[string]any
		code   int
		detail string
	}{
		{"unknown owner", map[string]any{"company_name": "A", "user_id": ghost, "iso_id": chain.ISO.ID.Hex()}, http.StatusNotFound, "User not found"},
		{"unknown iso", map[string]any{"company_name": "A", "user_id": owner.ID.Hex(), "iso_id": ghost}, http.StatusNotFound, "ISO not found"},
		{"malformed owner", map[string]any{"company_name": "A", "user_id": "bad", "iso_id": ghost}, http.StatusBadRequest, "Invalid user ID format"},
		{"malformed iso", map[string]any{"company_name": "A", "user_id": owner.ID.Hex(), "iso_id": "bad"}, http.StatusBadRequest, "Invalid ISO ID format"},
		{"blank name", map[string]any{"company_name": "   ", "user_id": owner.ID.Hex(), "iso_id": chain.ISO.ID.Hex()}, http.StatusBadRequest, "Company name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/companies/", tt.body, admin))
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.detail, testutil.Detail(t, rec))
		})
	}
}

func TestServeList_Scoping(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateSuperAdmin(ctx, "root")
	iso := models.ISOID(primitive.NewObjectID().Hex())
	mine := fx.CreateCompany(ctx, "Mine", admin.UserID(), iso)
	fx.CreateCompany(ctx, "Theirs", admin.UserID(), iso)
	employee := fx.CreateUser(ctx, "emp", models.RoleEmployee, models.CompanyID(mine.ID.Hex()))
	loner := fx.CreateUser(ctx, "loner", models.RoleSpectator, "")

	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/companies/", nil, admin))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DecodeBody[[]models.Company](t, rec), 2)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/companies/", nil, employee))
	require.Equal(t, http.StatusOK, rec.Code)
	list := testutil.DecodeBody[[]models.Company](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Mine", list[0].Name)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/companies/", nil, loner))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, testutil.DecodeBody[[]models.Company](t, rec))
}

func TestServeView_Access(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateSuperAdmin(ctx, "root")
	iso := models.ISOID(primitive.NewObjectID().Hex())
	mine := fx.CreateCompany(ctx, "Mine", admin.UserID(), iso)
	theirs := fx.CreateCompany(ctx, "Theirs", admin.UserID(), iso)
	employee := fx.CreateUser(ctx, "emp", models.RoleEmployee, models.CompanyID(mine.ID.Hex()))

	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/companies/"+mine.ID.Hex(), nil, employee))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/companies/"+theirs.ID.Hex(), nil, employee))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied to this company", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/companies/"+primitive.NewObjectID().Hex(), nil, admin))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Company not found", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/companies/xyz", nil, admin))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid company ID format", testutil.Detail(t, rec))
}

func TestServeByOwner(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateSuperAdmin(ctx, "root")
	owner := fx.CreateUser(ctx, "owner", models.RoleAuditor, "")
	iso := models.ISOID(primitive.NewObjectID().Hex())
	a := fx.CreateCompany(ctx, "A", owner.UserID(), iso)
	fx.CreateCompany(ctx, "B", owner.UserID(), iso)
	employee := fx.CreateUser(ctx, "emp", models.RoleEmployee, models.CompanyID(a.ID.Hex()))

	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/companies/user/"+owner.ID.Hex(), nil, admin))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DecodeBody[[]models.Company](t, rec), 2)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/companies/user/"+owner.ID.Hex(), nil, employee))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DecodeBody[[]models.Company](t, rec), 1)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/companies/user/nope", nil, admin))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid user ID format", testutil.Detail(t, rec))
}

func TestHandleEditAndDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateSuperAdmin(ctx, "root")
	iso := models.ISOID(primitive.NewObjectID().Hex())
	c := fx.CreateCompany(ctx, "Acme", admin.UserID(), iso)

	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPut, "/companies/"+c.ID.Hex(), map[string]any{}, admin))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No fields to update", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPut, "/companies/"+c.ID.Hex(),
		map[string]any{"iso_id": primitive.NewObjectID().Hex()}, admin))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ISO not found", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPut, "/companies/"+c.ID.Hex(),
		map[string]any{"company_name": "Acme Corp", "is_active": false}, admin))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := testutil.DecodeBody[models.Company](t, rec)
	assert.Equal(t, "Acme Corp", got.Name)
	assert.False(t, got.IsActive)
	assert.Equal(t, iso, got.ISOID)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodDelete, "/companies/"+c.ID.Hex(), nil, admin))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodDelete, "/companies/"+c.ID.Hex(), nil, admin))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
