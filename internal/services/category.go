package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/store"
)

// deleteAttempts bounds reassign-then-delete rounds when the store reports
// that notes slipped into the category between the two steps.
const deleteAttempts = 3

type CategoryService struct {
	store    store.Store
	resolver *UncategorizedResolver
	cascade  *CascadeReassigner
}

func NewCategoryService(s store.Store, r *UncategorizedResolver, c *CascadeReassigner) *CategoryService {
	return &CategoryService{store: s, resolver: r, cascade: c}
}

type CreateCategoryInput struct {
	UserID      string
	Name        string
	Description *string
	ColorCode   string
}

func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*model.Category, error) {
	if err := requireUser(in.UserID); err != nil {
		return nil, err
	}
	name, err := checkCategoryName(in.Name)
	if err != nil {
		return nil, err
	}
	color := strings.TrimSpace(in.ColorCode)
	if color == "" {
		color = model.DefaultCategoryColor
	}
	desc := in.Description
	if desc != nil && strings.TrimSpace(*desc) == "" {
		desc = nil
	}
	return s.store.Categories().Create(ctx, &model.Category{
		UserID:      in.UserID,
		Name:        name,
		Description: desc,
		ColorCode:   color,
	})
}

func (s *CategoryService) Get(ctx context.Context, categoryID string) (*model.Category, error) {
	id, err := s.store.ParseID(categoryID)
	if err != nil {
		return nil, err
	}
	return s.store.Categories().GetByID(ctx, id)
}

// List returns the user's categories by name, creating Uncategorized first
// so it is always offered.
func (s *CategoryService) List(ctx context.Context, userID string) ([]*model.Category, error) {
	if _, err := s.resolver.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.Categories().List(ctx, userID)
}

// Update applies only the fields present in p.
func (s *CategoryService) Update(ctx context.Context, categoryID string, p model.CategoryPatch) (*model.Category, error) {
	id, err := s.store.ParseID(categoryID)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		name, err := checkCategoryName(*p.Name)
		if err != nil {
			return nil, err
		}
		p.Name = &name

		current, err := s.store.Categories().GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.IsUncategorized() && name != model.UncategorizedName {
			return nil, fmt.Errorf("%w: %s cannot be renamed", model.ErrProtectedCategory, model.UncategorizedName)
		}
	}
	return s.store.Categories().Update(ctx, id, p)
}

// Delete reassigns the category's notes to Uncategorized and then removes
// it. A failed reassignment aborts before anything is deleted.
func (s *CategoryService) Delete(ctx context.Context, categoryID, userID string) (int64, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	id, err := s.store.ParseID(categoryID)
	if err != nil {
		return 0, err
	}
	cat, err := s.store.Categories().GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if cat.UserID != userID {
		return 0, model.ErrNotFound
	}
	if cat.IsUncategorized() {
		return 0, fmt.Errorf("%w: %s cannot be deleted", model.ErrProtectedCategory, model.UncategorizedName)
	}

	var moved int64
	for attempt := 1; ; attempt++ {
		n, err := s.cascade.ReassignOnCategoryDelete(ctx, id, userID)
		if err != nil {
			return moved, err
		}
		moved += n

		err = s.store.Categories().Delete(ctx, id)
		if err == nil {
			break
		}
		if !errors.Is(err, model.ErrCategoryInUse) || attempt == deleteAttempts {
			return moved, err
		}
	}

	// Stores without referential checks: sweep notes that landed after the
	// bulk update. The row is already gone, so a failed sweep is logged and
	// the delete still reports success.
	n, err := s.cascade.ReassignOnCategoryDelete(ctx, id, userID)
	if err != nil {
		log.Warn().Err(err).Str("category_id", id).Msg("post-delete sweep failed; late notes may still reference the deleted category")
	} else {
		moved += n
	}

	log.Info().
		Str("user_id", userID).
		Str("category_id", id).
		Str("category", cat.Name).
		Int64("reassigned", moved).
		Msg("category deleted")
	return moved, nil
}
