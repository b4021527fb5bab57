package auditlog_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/valids/internal/app/store/audit"
	"github.com/dalemusser/valids/internal/app/system/auditlog"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/dalemusser/valids/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func sampleUser() models.User {
	cid := models.CompanyID(primitive.NewObjectID().Hex())
	return models.User{ID: primitive.NewObjectID(), Username: "alice", Role: models.RoleEmployee, CompanyID: &cid, IsActive: true}
}

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("POST", "/auth/login", nil)

	logger.Log(ctx, audit.Event{EventType: "test"})
	logger.LoginSuccess(ctx, req, sampleUser())
	logger.LoginFailedUserNotFound(ctx, req, "ghost")
}

func TestLogger_ConfigOff(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	core, logs := observer.New(zap.InfoLevel)
	logger := auditlog.New(store, zap.New(core), auditlog.Config{Auth: auditlog.DestOff, Admin: auditlog.DestOff})

	u := sampleUser()
	logger.LoginSuccess(ctx, httptest.NewRequest("POST", "/", nil), u)

	n, err := store.Count(ctx, audit.QueryFilter{UserID: u.ID.Hex()})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Error("expected no stored events when config is off")
	}
	if logs.Len() != 0 {
		t.Error("expected no zap entries when config is off")
	}
}

func TestLogger_ConfigDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	core, logs := observer.New(zap.InfoLevel)
	logger := auditlog.New(store, zap.New(core), auditlog.Config{Auth: auditlog.DestDB, Admin: auditlog.DestDB})

	actor := sampleUser()
	actor.Role = models.RoleSuperAdmin
	target := sampleUser()
	logger.PasswordReset(ctx, httptest.NewRequest("POST", "/", nil), &actor, target)

	events, err := store.Query(ctx, audit.QueryFilter{UserID: target.ID.Hex()})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].EventType != audit.EventPasswordReset || events[0].ActorID != actor.ID.Hex() {
		t.Errorf("unexpected event: %+v", events[0])
	}
	if logs.Len() != 0 {
		t.Error("expected no zap entries for db-only config")
	}
}

func TestLogger_ConfigLog(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	core, logs := observer.New(zap.InfoLevel)
	logger := auditlog.New(nil, zap.New(core), auditlog.Config{Auth: auditlog.DestLog, Admin: auditlog.DestLog})

	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("X-Forwarded-For", "10.1.1.1")
	logger.LoginFailedUserNotFound(ctx, req, "ghost")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 zap entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["event_type"] != audit.EventLoginFailedUserNotFound {
		t.Errorf("event_type = %v", fields["event_type"])
	}
	if fields["ip"] != "10.1.1.1" {
		t.Errorf("ip = %v, want 10.1.1.1", fields["ip"])
	}
	if fields["detail_attempted_login"] != "ghost" {
		t.Errorf("detail_attempted_login = %v", fields["detail_attempted_login"])
	}
}

func TestValidDest(t *testing.T) {
	for _, s := range []string{"all", "db", "log", "off"} {
		if !auditlog.ValidDest(s) {
			t.Errorf("ValidDest(%q) = false", s)
		}
	}
	if auditlog.ValidDest("both") {
		t.Error("ValidDest(both) = true")
	}
}
