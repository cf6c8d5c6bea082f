package store

import (
	"context"
	"time"

	"github.com/MohammedPathariya/NoteNest/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (sqlite, postgres, mongo).
//
// Ids crossing this interface are strings in the store's canonical form;
// ParseID converts a boundary string to that form or fails with
// model.ErrInvalidReference.
type Store interface {
	Categories() Categories
	Notes() Notes
	ParseID(raw string) (string, error)
}

// Categories enforces unique (user_id, name); inserts and renames that
// collide fail with model.ErrDuplicateName.
type Categories interface {
	Create(ctx context.Context, c *model.Category) (*model.Category, error)
	GetByID(ctx context.Context, categoryID string) (*model.Category, error)
	GetByName(ctx context.Context, userID, name string) (*model.Category, error)
	List(ctx context.Context, userID string) ([]*model.Category, error)
	Update(ctx context.Context, categoryID string, p model.CategoryPatch) (*model.Category, error)
	// Delete fails with model.ErrCategoryInUse while notes still reference
	// the category, on stores that can enforce it. Stores without foreign
	// keys (mongo) delete unconditionally; a note inserted between the
	// caller's reassignment and this call keeps the dead id until a later
	// sweep moves it.
	Delete(ctx context.Context, categoryID string) error
}

type Notes interface {
	Create(ctx context.Context, n *model.Note) (*model.Note, error)
	GetByID(ctx context.Context, noteID string) (*model.Note, error)
	// List returns notes ordered by updated_at descending.
	List(ctx context.Context, userID string, archived bool) ([]*model.Note, error)
	Update(ctx context.Context, noteID string, p model.NotePatch, now time.Time) (*model.Note, error)
	// SetArchived matches by id, narrowed by userID when non-empty.
	SetArchived(ctx context.Context, noteID, userID string, archived bool, now time.Time) (*model.Note, error)
	Delete(ctx context.Context, noteID string) error
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	// Reassign moves every note referencing from onto to in a single
	// filtered update and returns the number of notes moved.
	Reassign(ctx context.Context, from, to string, now time.Time) (int64, error)
	// ActiveCountsByCategory counts non-archived notes per category, joined
	// with category name and color. Categories without active notes are absent.
	ActiveCountsByCategory(ctx context.Context, userID string) ([]model.CategoryCount, error)
}
