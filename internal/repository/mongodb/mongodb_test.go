package mongodb

// INTEGRATION TESTS:
// These run against a real MongoDB. Set MONGO_TEST_URI to enable them:
//
//	MONGO_TEST_URI=mongodb://localhost:27017 go test ./internal/repository/mongodb/
//
// Without it the whole package skips — the service and handler tests cover
// the logic above this layer with in-memory fakes. Each test run uses a
// fresh, uniquely named database that is dropped on cleanup.

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/rs/xid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tanvir/jobtrackr/internal/apperror"
	"github.com/tanvir/jobtrackr/internal/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("Skipping MongoDB integration test: MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	db, err := New(ctx, uri, "jobtrackr_test_"+xid.New().String())
	if err != nil {
		t.Fatalf("connecting to test MongoDB: %v", err)
	}
	t.Cleanup(func() {
		_ = db.jobs.Database().Drop(ctx)
		_ = db.Close(ctx)
	})
	return db
}

func insertTestJob(t *testing.T, db *DB) *model.Job {
	t.Helper()
	job := &model.Job{
		Company:     "Acme",
		Position:    "Engineer",
		Status:      "applied",
		DateApplied: "2026-08-28 12:00",
	}
	if err := db.Insert(context.Background(), job); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	return job
}

func TestJobInsertAndGet(t *testing.T) {
	db := newTestDB(t)

	created := insertTestJob(t, db)
	if len(created.ID) != 24 {
		t.Fatalf("Insert() set ID %q, want 24-char hex", created.ID)
	}

	oid, err := primitive.ObjectIDFromHex(created.ID)
	if err != nil {
		t.Fatalf("generated ID is not valid hex: %v", err)
	}

	found, err := db.GetByID(context.Background(), oid)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if *found != *created {
		t.Errorf("GetByID() = %+v, want %+v", found, created)
	}
}

func TestJobGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestJobList_Snapshot(t *testing.T) {
	db := newTestDB(t)

	insertTestJob(t, db)
	insertTestJob(t, db)

	jobs, err := db.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("List() returned %d jobs, want 2", len(jobs))
	}
}

func TestJobUpdate_MergesFields(t *testing.T) {
	db := newTestDB(t)
	created := insertTestJob(t, db)
	oid, _ := primitive.ObjectIDFromHex(created.ID)

	updated, err := db.Update(context.Background(), oid, map[string]any{"status": "offer"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Status != "offer" {
		t.Errorf("Status = %q, want %q", updated.Status, "offer")
	}
	if updated.Company != created.Company || updated.DateApplied != created.DateApplied {
		t.Error("Update() clobbered fields outside the $set")
	}
}

func TestJobDelete_Idempotence(t *testing.T) {
	db := newTestDB(t)
	created := insertTestJob(t, db)
	oid, _ := primitive.ObjectIDFromHex(created.ID)

	if err := db.Delete(context.Background(), oid); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := db.Delete(context.Background(), oid); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestUserCreate_DuplicateKeyIsConflict(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{Username: "alice", PasswordHash: "$2a$04$fakefakefakefakefakefake"}
	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.ID == "" {
		t.Error("Create() did not set user.ID")
	}

	// The unique index — not application code — enforces this.
	dup := &model.User{Username: "alice", PasswordHash: "other"}
	if err := db.Create(context.Background(), dup); !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("duplicate Create() error = %v, want ErrConflict", err)
	}
}

func TestUserGetByUsername(t *testing.T) {
	db := newTestDB(t)

	created := &model.User{Username: "bob", PasswordHash: "hash"}
	if err := db.Create(context.Background(), created); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := db.GetByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if found.ID != created.ID || found.PasswordHash != "hash" {
		t.Errorf("GetByUsername() = %+v, want %+v", found, created)
	}

	// Case-sensitive: "Bob" is a different user.
	if _, err := db.GetByUsername(context.Background(), "Bob"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByUsername(Bob) error = %v, want ErrNotFound", err)
	}
}
