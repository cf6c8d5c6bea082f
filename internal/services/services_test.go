package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MohammedPathariya/NoteNest/internal/classifier"
	"github.com/MohammedPathariya/NoteNest/internal/invariants"
	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/store"
	"github.com/MohammedPathariya/NoteNest/internal/store/sqlite"
)

// stepClock advances one second per reading so ordering by timestamp is deterministic.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type testEnv struct {
	store      store.Store
	resolver   *UncategorizedResolver
	cascade    *CascadeReassigner
	categories *CategoryService
	notes      *NoteService
	analytics  *AnalyticsService
}

func newSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "notes.db"))
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return sqlite.NewWithDB(db)
}

func newTestEnvWithStore(t *testing.T, st store.Store) *testEnv {
	t.Helper()
	clk := newStepClock()
	resolver := NewUncategorizedResolver(st)
	cascade := NewCascadeReassigner(st, resolver)
	cascade.now = clk.Now
	notes := NewNoteService(st, resolver)
	notes.now = clk.Now
	return &testEnv{
		store:      st,
		resolver:   resolver,
		cascade:    cascade,
		categories: NewCategoryService(st, resolver, cascade),
		notes:      notes,
		analytics:  NewAnalyticsService(st),
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, newSQLiteStore(t))
}

func (e *testEnv) smart(c classifier.Classifier, timeout time.Duration) *SmartNoteService {
	auto := classifier.NewAuto(c, timeout, 1, zerolog.Nop())
	return NewSmartNoteService(e.store, e.notes, e.resolver, auto)
}

func (e *testEnv) mustCategory(t *testing.T, userID, name string) *model.Category {
	t.Helper()
	c, err := e.categories.Create(context.Background(), CreateCategoryInput{UserID: userID, Name: name})
	if err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return c
}

func (e *testEnv) mustNote(t *testing.T, userID, categoryID, content string) *model.Note {
	t.Helper()
	n, err := e.notes.Create(context.Background(), CreateNoteInput{UserID: userID, CategoryID: categoryID, Content: content})
	if err != nil {
		t.Fatalf("create note %q: %v", content, err)
	}
	return n
}

func strPtr(s string) *string { return &s }

// assertConsistent fails the test when the user's stored data breaks a referential rule.
func (e *testEnv) assertConsistent(t *testing.T, userID string) {
	t.Helper()
	v, err := invariants.Check(context.Background(), e.store, userID)
	require.NoError(t, err)
	require.Empty(t, v)
}
