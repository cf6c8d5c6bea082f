package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/store"
)

// CascadeReassigner moves notes off a category that is about to disappear.
type CascadeReassigner struct {
	store    store.Store
	resolver *UncategorizedResolver
	now      func() time.Time
}

func NewCascadeReassigner(s store.Store, r *UncategorizedResolver) *CascadeReassigner {
	return &CascadeReassigner{store: s, resolver: r, now: clock}
}

// ReassignOnCategoryDelete points every note of categoryID at the user's
// Uncategorized category with one filtered bulk update, so notes created
// after the count are still caught. It returns how many notes moved.
func (c *CascadeReassigner) ReassignOnCategoryDelete(ctx context.Context, categoryID, userID string) (int64, error) {
	n, err := c.store.Notes().CountByCategory(ctx, categoryID)
	if err != nil {
		return 0, fmt.Errorf("count notes of category %s: %w", categoryID, err)
	}
	if n == 0 {
		return 0, nil
	}

	unc, err := c.resolver.GetOrCreate(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("resolve Uncategorized for %s: %w", userID, err)
	}
	if unc.ID == categoryID {
		return 0, model.ErrProtectedCategory
	}

	moved, err := c.store.Notes().Reassign(ctx, categoryID, unc.ID, c.now())
	if err != nil {
		return 0, fmt.Errorf("reassign notes of category %s: %w", categoryID, err)
	}
	notesReassignedTotal.Add(float64(moved))
	return moved, nil
}
