package formutil_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/valids/internal/app/system/formutil"
	"github.com/dalemusser/valids/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body.Detail
}

func TestPathID(t *testing.T) {
	oid := primitive.NewObjectID()

	req := testutil.WithChiURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", oid.Hex())
	rec := httptest.NewRecorder()
	got, ok := formutil.PathID(rec, req, "id", "user")
	if !ok || got != oid {
		t.Fatalf("PathID = %v, %v", got, ok)
	}

	req = testutil.WithChiURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "nope")
	rec = httptest.NewRecorder()
	if _, ok := formutil.PathID(rec, req, "id", "user"); ok {
		t.Fatal("expected failure for malformed id")
	}
	if rec.Code != http.StatusBadRequest || detail(t, rec) != "Invalid user ID format" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestPage(t *testing.T) {
	rec := httptest.NewRecorder()
	p, ok := formutil.Page(rec, httptest.NewRequest(http.MethodGet, "/?skip=5&limit=10", nil))
	if !ok || p.Skip != 5 || p.Limit != 10 {
		t.Errorf("Page = %+v, %v", p, ok)
	}

	rec = httptest.NewRecorder()
	if _, ok := formutil.Page(rec, httptest.NewRequest(http.MethodGet, "/?limit=0", nil)); ok {
		t.Fatal("expected failure for limit=0")
	}
	if rec.Code != http.StatusBadRequest || !strings.HasPrefix(detail(t, rec), "Limit") {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

type bindInput struct {
	Name string `json:"name" validate:"required,min=3" label:"Name"`
}

func TestBind(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		ok     bool
		detail string
	}{
		{"valid", `{"name":"alice"}`, true, ""},
		{"empty body", ``, false, "Request body is required"},
		{"bad json", `{`, false, ""},
		{"too short", `{"name":"al"}`, false, "Name must be at least 3 characters"},
		{"missing", `{}`, false, "Name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			var in bindInput
			ok := formutil.Bind(rec, req, &in)
			if ok != tt.ok {
				t.Fatalf("Bind = %v, want %v (%s)", ok, tt.ok, rec.Body.String())
			}
			if !ok && tt.detail != "" && detail(t, rec) != tt.detail {
				t.Errorf("detail = %q, want %q", detail(t, rec), tt.detail)
			}
		})
	}
}

func TestTrim(t *testing.T) {
	if formutil.Trim(nil) != nil {
		t.Error("nil should stay nil")
	}
	s := "  x "
	if got := formutil.Trim(&s); *got != "x" {
		t.Errorf("Trim = %q", *got)
	}
}

func TestRequireRef(t *testing.T) {
	id := primitive.NewObjectID()
	found := func(context.Context, primitive.ObjectID) (bool, error) { return true, nil }
	missing := func(context.Context, primitive.ObjectID) (bool, error) { return false, nil }
	broken := func(context.Context, primitive.ObjectID) (bool, error) { return false, errors.New("boom") }

	rec := httptest.NewRecorder()
	if !formutil.RequireRef(context.Background(), rec, zap.NewNop(), found, id, "User not found") {
		t.Error("expected existing reference to pass")
	}

	rec = httptest.NewRecorder()
	if formutil.RequireRef(context.Background(), rec, zap.NewNop(), missing, id, "User not found") {
		t.Error("expected missing reference to fail")
	}
	if rec.Code != http.StatusNotFound || detail(t, rec) != "User not found" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	if formutil.RequireRef(context.Background(), rec, zap.NewNop(), broken, id, "User not found") {
		t.Error("expected lookup failure to fail")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("got %d", rec.Code)
	}
}
