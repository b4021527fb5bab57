package iso_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/valids/internal/app/features/iso"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/dalemusser/valids/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*iso.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return iso.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func serve(h *iso.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r := chi.NewRouter()
	r.Mount("/iso", iso.Routes(h))
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleCreate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateSuperAdmin(ctx, "root")
	chain := fx.CreateChain(ctx, "a")

	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/iso/", map[string]any{
		"iso_name":   "ISO 9001",
		"control_id": chain.Control.ID.Hex(),
	}, admin))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got := testutil.DecodeBody[models.ISOStandard](t, rec)
	assert.Equal(t, "ISO 9001", got.Name)
	assert.Equal(t, models.ControlID(chain.Control.ID.Hex()), got.ControlID)
	assert.True(t, got.IsActive)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/iso/", map[string]any{
		"iso_name":   "ISO 9001",
		"control_id": primitive.NewObjectID().Hex(),
	}, admin))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Control not found", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/iso/", map[string]any{
		"iso_name":   "ISO 9001",
		"control_id": "bad",
	}, admin))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid control ID format", testutil.Detail(t, rec))
}

func TestRoutes_WritesRequireSuperAdmin(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	auditor := fx.CreateUser(ctx, "aud", models.RoleAuditor, models.CompanyID(primitive.NewObjectID().Hex()))
	chain := fx.CreateChain(ctx, "a")

	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/iso/", map[string]any{
		"iso_name":   "ISO 9001",
		"control_id": chain.Control.ID.Hex(),
	}, auditor))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/iso/", nil, auditor))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DecodeBody[[]models.ISOStandard](t, rec), 1)
}

func TestServeViewAndByControl(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	employee := fx.CreateUser(ctx, "emp", models.RoleEmployee, "")
	chain := fx.CreateChain(ctx, "a")
	fx.CreateChain(ctx, "b")

	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/iso/"+chain.ISO.ID.Hex(), nil, employee))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a ISO", testutil.DecodeBody[models.ISOStandard](t, rec).Name)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/iso/nope", nil, employee))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ISO ID format", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/iso/"+primitive.NewObjectID().Hex(), nil, employee))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ISO not found", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/iso/control/"+chain.Control.ID.Hex(), nil, employee))
	require.Equal(t, http.StatusOK, rec.Code)
	list := testutil.DecodeBody[[]models.ISOStandard](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, chain.ISO.ID, list[0].ID)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/iso/control/nope", nil, employee))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid control ID format", testutil.Detail(t, rec))
}

func TestHandleEditAndDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateSuperAdmin(ctx, "root")
	chain := fx.CreateChain(ctx, "a")
	path := "/iso/" + chain.ISO.ID.Hex()

	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPut, path, map[string]any{}, admin))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No fields to update", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPut, path, map[string]any{"iso_description": "ISMS"}, admin))
	require.Equal(t, http.StatusOK, rec.Code)
	got := testutil.DecodeBody[models.ISOStandard](t, rec)
	require.NotNil(t, got.Description)
	assert.Equal(t, "ISMS", *got.Description)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodDelete, path, nil, admin))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodDelete, path, nil, admin))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
