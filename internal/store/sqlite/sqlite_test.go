package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/store"
	"github.com/MohammedPathariya/NoteNest/internal/store/storetest"
)

func makeSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "notes.db"))
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db)
}

func TestSQLiteStore_Compliance(t *testing.T) {
	storetest.Run(t, makeSQLiteStore)
}

func TestSQLiteStore_ForeignKeys(t *testing.T) {
	s := makeSQLiteStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	cat, err := s.Categories().Create(ctx, &model.Category{UserID: "u1", Name: "Work", ColorCode: "#000000"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := s.Notes().Create(ctx, &model.Note{UserID: "u1", CategoryID: cat.ID, Content: "x", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("create note: %v", err)
	}

	if err := s.Categories().Delete(ctx, cat.ID); !errors.Is(err, model.ErrCategoryInUse) {
		t.Fatalf("delete referenced category: want ErrCategoryInUse, got %v", err)
	}

	missing := uuid.New().String()
	if _, err := s.Notes().Create(ctx, &model.Note{UserID: "u1", CategoryID: missing, Content: "y", CreatedAt: now, UpdatedAt: now}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("note for missing category: want ErrNotFound, got %v", err)
	}
	notes, err := s.Notes().List(ctx, "u1", false)
	if err != nil || len(notes) != 1 {
		t.Fatalf("expected only the first note persisted: n=%d err=%v", len(notes), err)
	}
}

func TestSQLiteStore_ParseIDCanonical(t *testing.T) {
	s := makeSQLiteStore(t)
	id := uuid.New()
	got, err := s.ParseID("  " + id.String() + " ")
	if err != nil || got != id.String() {
		t.Fatalf("ParseID: got=%q err=%v", got, err)
	}
}
