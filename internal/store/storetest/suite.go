package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/store"
)

// Run exercises the compliance suite against a store.Store implementation.
// makeStore should return a clean, isolated store; user ids are unique per run
// so shared databases are fine.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()
	userID := "u-" + uuid.New().String()
	otherUser := "u-" + uuid.New().String()
	base := time.Now().UTC().Truncate(time.Millisecond)

	// Ids
	if _, err := s.ParseID("not-an-id"); !errors.Is(err, model.ErrInvalidReference) {
		t.Fatalf("ParseID malformed: want ErrInvalidReference, got %v", err)
	}

	// Categories
	work, err := s.Categories().Create(ctx, &model.Category{UserID: userID, Name: "Work", ColorCode: "#111111"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if work.ID == "" {
		t.Fatalf("CreateCategory: empty id")
	}
	if id, err := s.ParseID(work.ID); err != nil || id != work.ID {
		t.Fatalf("ParseID round trip: id=%q err=%v", id, err)
	}
	if _, err := s.Categories().Create(ctx, &model.Category{UserID: userID, Name: "Work", ColorCode: "#222222"}); !errors.Is(err, model.ErrDuplicateName) {
		t.Fatalf("duplicate category: want ErrDuplicateName, got %v", err)
	}
	if _, err := s.Categories().Create(ctx, &model.Category{UserID: otherUser, Name: "Work", ColorCode: "#222222"}); err != nil {
		t.Fatalf("same name for other user: %v", err)
	}
	desc := "home things"
	personal, err := s.Categories().Create(ctx, &model.Category{UserID: userID, Name: "Personal", Description: &desc, ColorCode: "#333333"})
	if err != nil {
		t.Fatalf("CreateCategory personal: %v", err)
	}
	if got, err := s.Categories().GetByID(ctx, personal.ID); err != nil || got.Description == nil || *got.Description != desc {
		t.Fatalf("GetCategory: got=%+v err=%v", got, err)
	}
	if got, err := s.Categories().GetByName(ctx, userID, "Work"); err != nil || got.ID != work.ID {
		t.Fatalf("GetCategoryByName: got=%+v err=%v", got, err)
	}
	if _, err := s.Categories().GetByName(ctx, userID, "Missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetCategoryByName missing: want ErrNotFound, got %v", err)
	}
	lst, err := s.Categories().List(ctx, userID)
	if err != nil || len(lst) != 2 || lst[0].Name != "Personal" || lst[1].Name != "Work" {
		t.Fatalf("ListCategories: %+v err=%v", lst, err)
	}

	color := "#444444"
	upd, err := s.Categories().Update(ctx, personal.ID, model.CategoryPatch{ColorCode: &color})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if upd.ColorCode != color || upd.Name != "Personal" || upd.Description == nil || *upd.Description != desc {
		t.Fatalf("UpdateCategory partial: %+v", upd)
	}
	taken := "Work"
	if _, err := s.Categories().Update(ctx, personal.ID, model.CategoryPatch{Name: &taken}); !errors.Is(err, model.ErrDuplicateName) {
		t.Fatalf("rename onto existing: want ErrDuplicateName, got %v", err)
	}

	// Notes
	n1, err := s.Notes().Create(ctx, &model.Note{
		UserID: userID, CategoryID: work.ID, Content: "first", Tags: []string{"a", "b"},
		CreatedAt: base, UpdatedAt: base,
	})
	if err != nil {
		t.Fatalf("CreateNote n1: %v", err)
	}
	ref := "manual-seed"
	n2, err := s.Notes().Create(ctx, &model.Note{
		UserID: userID, CategoryID: work.ID, Content: "second",
		CreatedAt: base.Add(time.Second), UpdatedAt: base.Add(time.Second), IsReminder: true, LLMRef: &ref,
	})
	if err != nil {
		t.Fatalf("CreateNote n2: %v", err)
	}
	n3, err := s.Notes().Create(ctx, &model.Note{
		UserID: userID, CategoryID: personal.ID, Content: "third",
		CreatedAt: base.Add(2 * time.Second), UpdatedAt: base.Add(2 * time.Second),
	})
	if err != nil {
		t.Fatalf("CreateNote n3: %v", err)
	}

	got, err := s.Notes().GetByID(ctx, n2.ID)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if !got.IsReminder || got.LLMRef == nil || *got.LLMRef != ref || !got.CreatedAt.Equal(n2.CreatedAt) || len(got.Tags) != 0 {
		t.Fatalf("GetNote fields: %+v", got)
	}

	active, err := s.Notes().List(ctx, userID, false)
	if err != nil || len(active) != 3 {
		t.Fatalf("ListNotes: n=%d err=%v", len(active), err)
	}
	if active[0].ID != n3.ID || active[1].ID != n2.ID || active[2].ID != n1.ID {
		t.Fatalf("ListNotes order: %s %s %s", active[0].Content, active[1].Content, active[2].Content)
	}

	// Partial update touches only supplied fields and refreshes updated_at
	content := "first, edited"
	edited, err := s.Notes().Update(ctx, n1.ID, model.NotePatch{Content: &content}, base.Add(3*time.Second))
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if edited.Content != content || edited.CategoryID != work.ID || len(edited.Tags) != 2 || !edited.UpdatedAt.Equal(base.Add(3*time.Second)) {
		t.Fatalf("UpdateNote partial: %+v", edited)
	}
	if active, _ = s.Notes().List(ctx, userID, false); active[0].ID != n1.ID {
		t.Fatalf("ListNotes after update: most recently touched first, got %s", active[0].Content)
	}

	// Archive narrowed by user
	if _, err := s.Notes().SetArchived(ctx, n2.ID, otherUser, true, base.Add(4*time.Second)); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("archive other user: want ErrNotFound, got %v", err)
	}
	arch, err := s.Notes().SetArchived(ctx, n2.ID, userID, true, base.Add(4*time.Second))
	if err != nil || !arch.Archived || !arch.UpdatedAt.Equal(base.Add(4*time.Second)) {
		t.Fatalf("archive: %+v err=%v", arch, err)
	}
	if archived, err := s.Notes().List(ctx, userID, true); err != nil || len(archived) != 1 || archived[0].ID != n2.ID {
		t.Fatalf("ListNotes archived: %+v err=%v", archived, err)
	}

	// Aggregation: inner join, active notes only
	counts, err := s.Notes().ActiveCountsByCategory(ctx, userID)
	if err != nil {
		t.Fatalf("ActiveCounts: %v", err)
	}
	byName := map[string]model.CategoryCount{}
	for _, c := range counts {
		byName[c.CategoryName] = c
	}
	if len(byName) != 2 || byName["Work"].NoteCount != 1 || byName["Personal"].NoteCount != 1 || byName["Personal"].ColorCode != color {
		t.Fatalf("ActiveCounts: %+v", counts)
	}

	// Reassign in bulk
	if n, err := s.Notes().CountByCategory(ctx, work.ID); err != nil || n != 2 {
		t.Fatalf("CountByCategory: n=%d err=%v", n, err)
	}
	moved, err := s.Notes().Reassign(ctx, work.ID, personal.ID, base.Add(5*time.Second))
	if err != nil || moved != 2 {
		t.Fatalf("Reassign: moved=%d err=%v", moved, err)
	}
	if got, _ := s.Notes().GetByID(ctx, n1.ID); got.CategoryID != personal.ID || !got.UpdatedAt.Equal(base.Add(5*time.Second)) {
		t.Fatalf("Reassign did not move n1: %+v", got)
	}
	if n, _ := s.Notes().CountByCategory(ctx, work.ID); n != 0 {
		t.Fatalf("CountByCategory after reassign: %d", n)
	}

	// Deletes
	if err := s.Categories().Delete(ctx, work.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if _, err := s.Categories().GetByID(ctx, work.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetCategory after delete: want ErrNotFound, got %v", err)
	}
	if err := s.Categories().Delete(ctx, work.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteCategory twice: want ErrNotFound, got %v", err)
	}
	if _, err := s.Categories().Update(ctx, work.ID, model.CategoryPatch{ColorCode: &color}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateCategory missing: want ErrNotFound, got %v", err)
	}
	if err := s.Notes().Delete(ctx, n3.ID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if err := s.Notes().Delete(ctx, n3.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteNote twice: want ErrNotFound, got %v", err)
	}
	if _, err := s.Notes().Update(ctx, n3.ID, model.NotePatch{Content: &content}, base); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateNote missing: want ErrNotFound, got %v", err)
	}
}
