package fields_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/valids/internal/app/features/fields"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/dalemusser/valids/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*fields.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return fields.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func serve(h *fields.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r := chi.NewRouter()
	r.Mount("/fields", fields.Routes(h))
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleCreate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	auditor := fx.CreateUser(ctx, "aud", models.RoleAuditor, "")

	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/fields/", map[string]any{
		"field_name": "Maturity",
		"fieldType":  "radio",
		"isRequired": true,
		"options":    []string{" Initial ", "", "Managed"},
	}, auditor))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got := testutil.DecodeBody[models.Field](t, rec)
	assert.Equal(t, "radio", got.Type)
	assert.True(t, got.IsRequired)
	assert.Equal(t, []string{"Initial", "Managed"}, got.Options)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/fields/", map[string]any{"field_name": "Notes"}, auditor))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Field type is required", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/fields/", map[string]any{"field_name": "Notes", "fieldType": "text"}, auditor))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{}, testutil.DecodeBody[models.Field](t, rec).Options)
}

func TestServeByType(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	employee := fx.CreateUser(ctx, "emp", models.RoleEmployee, "")
	fx.CreateField(ctx, "A")
	fx.CreateField(ctx, "B")

	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/fields/type/select", nil, employee))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DecodeBody[[]models.Field](t, rec), 2)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/fields/type/hologram", nil, employee))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, testutil.DecodeBody[[]models.Field](t, rec))
}

func TestHandleEditAndDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	auditor := fx.CreateUser(ctx, "aud", models.RoleAuditor, "")
	f := fx.CreateField(ctx, "Level")
	path := "/fields/" + f.ID.Hex()

	rec := serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPut, path, map[string]any{}, auditor))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No fields to update", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodPut, path, map[string]any{"options": []string{"Yes", "No"}}, auditor))
	require.Equal(t, http.StatusOK, rec.Code)
	got := testutil.DecodeBody[models.Field](t, rec)
	assert.Equal(t, []string{"Yes", "No"}, got.Options)
	assert.Equal(t, "Level", got.Name)

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/fields/"+primitive.NewObjectID().Hex(), nil, auditor))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Field not found", testutil.Detail(t, rec))

	rec = serve(h, testutil.NewAuthenticatedRequest(t, http.MethodDelete, path, nil, auditor))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
