package questionstore_test

import (
	"testing"

	questionstore "github.com/dalemusser/valids/internal/app/store/questions"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/dalemusser/valids/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := questionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	field := models.FieldID(primitive.NewObjectID().Hex())
	created, err := store.Create(ctx, models.Question{Description: "Do you rotate keys?", FieldID: field, IsActive: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	byField, err := store.FindByField(ctx, field)
	if err != nil || len(byField) != 1 {
		t.Errorf("FindByField = %d, %v", len(byField), err)
	}

	desc := "Do you rotate encryption keys?"
	updated, err := store.Update(ctx, created.ID, models.QuestionPatch{Description: &desc})
	if err != nil || updated.Description != desc || updated.FieldID != field {
		t.Errorf("Update = %+v, %v", updated, err)
	}

	if n, err := store.Delete(ctx, created.ID); err != nil || n != 1 {
		t.Errorf("Delete = %d, %v", n, err)
	}
	if ok, err := store.Exists(ctx, created.ID); err != nil || ok {
		t.Errorf("Exists after delete = %v, %v", ok, err)
	}
}

func TestStore_FirstMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := questionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	field := models.FieldID(primitive.NewObjectID().Hex())
	q1 := fixtures.CreateQuestion(ctx, "one", field)
	q2 := fixtures.CreateQuestion(ctx, "two", field)

	_, missing, err := store.FirstMissing(ctx, []primitive.ObjectID{q1.ID, q2.ID})
	if err != nil || missing {
		t.Errorf("all present: missing=%v err=%v", missing, err)
	}

	ghost := primitive.NewObjectID()
	id, missing, err := store.FirstMissing(ctx, []primitive.ObjectID{q1.ID, ghost, q2.ID})
	if err != nil || !missing || id != ghost {
		t.Errorf("FirstMissing = %v, %v, %v; want %v", id, missing, err, ghost)
	}
}

func TestStore_FindActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := questionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	field := models.FieldID(primitive.NewObjectID().Hex())
	q1 := fixtures.CreateQuestion(ctx, "one", field)
	q2 := fixtures.CreateQuestion(ctx, "two", field)
	q3 := fixtures.CreateQuestion(ctx, "three", field)
	inactive := false
	if _, err := store.Update(ctx, q3.ID, models.QuestionPatch{IsActive: &inactive}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	all, err := store.FindActive(ctx, nil)
	if err != nil || len(all) != 2 {
		t.Errorf("FindActive(nil) = %d, %v; want 2", len(all), err)
	}

	some, err := store.FindActive(ctx, []primitive.ObjectID{q2.ID, q3.ID})
	if err != nil || len(some) != 1 || some[0].ID != q2.ID {
		t.Errorf("FindActive(ids) = %+v, %v", some, err)
	}

	none, err := store.FindActive(ctx, []primitive.ObjectID{})
	if err != nil || len(none) != 0 {
		t.Errorf("FindActive(empty) = %d, %v; want 0", len(none), err)
	}
	_ = q1
}
