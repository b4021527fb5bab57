package submissionstore_test

import (
	"testing"
	"time"

	submissionstore "github.com/dalemusser/valids/internal/app/store/submissions"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/dalemusser/valids/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func ids() (models.UserID, models.CompanyID, models.ISOID) {
	return models.UserID(primitive.NewObjectID().Hex()),
		models.CompanyID(primitive.NewObjectID().Hex()),
		models.ISOID(primitive.NewObjectID().Hex())
}

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := submissionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, c, iso := ids()
	now := time.Now()
	created, err := store.Create(ctx, models.Submission{UserID: u, CompanyID: c, ISOID: iso, SubmittedAt: &now})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Status != models.StatusDraft {
		t.Errorf("Status = %q, want draft", created.Status)
	}
	if created.SubmittedAt != nil || created.ReviewedAt != nil {
		t.Error("new submissions carry no lifecycle stamps")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Data == nil || len(got.Data) != 0 {
		t.Errorf("Data = %v, want empty map", got.Data)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := submissionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, c, iso := ids()
	sub := fixtures.CreateSubmission(ctx, u, c, iso, models.StatusDraft, map[string]any{"q1": "yes"})

	status := models.StatusSubmitted
	p := models.SubmissionPatch{Status: &status, Data: map[string]any{"q1": "yes", "q2": true}}
	p.StampTransition(sub.Status, time.Now().UTC())

	updated, err := store.Update(ctx, sub.ID, p)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != models.StatusSubmitted || updated.SubmittedAt == nil || updated.ReviewedAt != nil {
		t.Errorf("unexpected lifecycle state: %+v", updated)
	}
	if len(updated.Data) != 2 {
		t.Errorf("Data = %v, want 2 entries", updated.Data)
	}

	if _, err := store.Update(ctx, primitive.NewObjectID(), p); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_FindAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := submissionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, c, iso := ids()
	s1 := fixtures.CreateSubmission(ctx, u, c, iso, models.StatusDraft, nil)
	fixtures.CreateSubmission(ctx, u, c, iso, models.StatusApproved, nil)
	_, other, _ := ids()
	fixtures.CreateSubmission(ctx, u, other, iso, models.StatusDraft, nil)

	byCompany, err := store.FindByCompany(ctx, c)
	if err != nil || len(byCompany) != 2 {
		t.Errorf("FindByCompany = %d, %v; want 2", len(byCompany), err)
	}

	n, err := store.Count(ctx, bson.M{"user_id": string(u)})
	if err != nil || n != 3 {
		t.Errorf("Count = %d, %v; want 3", n, err)
	}

	if n, err := store.Delete(ctx, s1.ID); err != nil || n != 1 {
		t.Errorf("Delete = %d, %v", n, err)
	}
}
