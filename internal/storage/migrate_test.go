package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "migrate-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}
}

func TestMigrateRoundTripCompatibility(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up failed: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up after down failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	rec := TaskRecord{
		ID:              "task-rt-1",
		Title:           "Roundtrip task",
		DurationMinutes: 20,
		RepeatDays:      []string{"Fri"},
		Dates:           []string{},
		CreatedAt:       time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
		CompletedOn:     []string{},
		DeletedOn:       []string{},
		TimeSpent:       map[string]int{},
	}
	if err := repo.PutTask(context.Background(), rec); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := repo.GetAllTasks(context.Background())
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Roundtrip task" {
		t.Fatalf("unexpected tasks after roundtrip: %#v", got)
	}
}
