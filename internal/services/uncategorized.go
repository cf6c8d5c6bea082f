package services

import (
	"context"
	"errors"

	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/store"
)

// UncategorizedResolver ensures each user has exactly one Uncategorized
// category. Nothing is cached; the store's unique (user_id, name)
// constraint settles concurrent first use.
type UncategorizedResolver struct {
	store store.Store
}

func NewUncategorizedResolver(s store.Store) *UncategorizedResolver {
	return &UncategorizedResolver{store: s}
}

func (r *UncategorizedResolver) GetOrCreate(ctx context.Context, userID string) (*model.Category, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	cat, err := r.store.Categories().GetByName(ctx, userID, model.UncategorizedName)
	if err == nil {
		return cat, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	desc := model.UncategorizedDescription
	cat, err = r.store.Categories().Create(ctx, &model.Category{
		UserID:      userID,
		Name:        model.UncategorizedName,
		Description: &desc,
		ColorCode:   model.UncategorizedColor,
	})
	if errors.Is(err, model.ErrDuplicateName) {
		// Another request created it first.
		return r.store.Categories().GetByName(ctx, userID, model.UncategorizedName)
	}
	if err != nil {
		return nil, err
	}
	uncategorizedCreatedTotal.Inc()
	return cat, nil
}
