package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/store"
)

type NoteService struct {
	store    store.Store
	resolver *UncategorizedResolver
	now      func() time.Time
}

func NewNoteService(s store.Store, r *UncategorizedResolver) *NoteService {
	return &NoteService{store: s, resolver: r, now: clock}
}

type CreateNoteInput struct {
	UserID     string
	CategoryID string
	Content    string
	Tags       []string
	LLMRef     *string
}

// Create stores a note under an existing category of the same user.
// A malformed category id fails with ErrInvalidReference, an unknown one
// with ErrNotFound; nothing is written in either case.
func (s *NoteService) Create(ctx context.Context, in CreateNoteInput) (*model.Note, error) {
	if err := requireUser(in.UserID); err != nil {
		return nil, err
	}
	if err := checkContent(in.Content); err != nil {
		return nil, err
	}
	catID, err := s.store.ParseID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCategory(ctx, catID, in.UserID); err != nil {
		return nil, err
	}
	if _, err := s.resolver.GetOrCreate(ctx, in.UserID); err != nil {
		return nil, err
	}
	n, err := s.insert(ctx, in.UserID, catID, in.Content, in.Tags, in.LLMRef)
	if err != nil {
		return nil, err
	}
	notesCreatedTotal.WithLabelValues("manual").Inc()
	return n, nil
}

// ownedCategory loads a category and hides those of other users.
func (s *NoteService) ownedCategory(ctx context.Context, categoryID, userID string) (*model.Category, error) {
	cat, err := s.store.Categories().GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, err)
	}
	if cat.UserID != userID {
		return nil, fmt.Errorf("category %s: %w", categoryID, model.ErrNotFound)
	}
	return cat, nil
}

func (s *NoteService) insert(ctx context.Context, userID, categoryID, content string, tags []string, ref *string) (*model.Note, error) {
	now := s.now()
	return s.store.Notes().Create(ctx, &model.Note{
		UserID:     userID,
		CategoryID: categoryID,
		Content:    content,
		Tags:       model.NormalizeTags(tags),
		CreatedAt:  now,
		UpdatedAt:  now,
		Archived:   false,
		IsReminder: IsReminder(content),
		LLMRef:     ref,
	})
}

func (s *NoteService) Get(ctx context.Context, noteID string) (*model.Note, error) {
	id, err := s.store.ParseID(noteID)
	if err != nil {
		return nil, err
	}
	return s.store.Notes().GetByID(ctx, id)
}

// List returns the user's notes in the given archive state, most recently
// modified first.
func (s *NoteService) List(ctx context.Context, userID string, archived bool) ([]*model.Note, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.store.Notes().List(ctx, userID, archived)
}

// Update applies the fields present in p and refreshes updated_at. A new
// category id must parse and name an existing category of the note's owner.
func (s *NoteService) Update(ctx context.Context, noteID string, p model.NotePatch) (*model.Note, error) {
	id, err := s.store.ParseID(noteID)
	if err != nil {
		return nil, err
	}
	var catID string
	if p.CategoryID != nil {
		if catID, err = s.store.ParseID(*p.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = &catID
	}
	if p.Content != nil {
		if err := checkContent(*p.Content); err != nil {
			return nil, err
		}
	}
	if p.Tags != nil {
		tags := model.NormalizeTags(*p.Tags)
		p.Tags = &tags
	}

	existing, err := s.store.Notes().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.CategoryID != nil {
		if _, err := s.ownedCategory(ctx, catID, existing.UserID); err != nil {
			return nil, err
		}
	}
	return s.store.Notes().Update(ctx, id, p, s.now())
}

// Archive hides a note from the active list. A non-empty userID narrows
// the match to that user's notes.
func (s *NoteService) Archive(ctx context.Context, noteID, userID string) (*model.Note, error) {
	return s.setArchived(ctx, noteID, userID, true)
}

func (s *NoteService) Unarchive(ctx context.Context, noteID, userID string) (*model.Note, error) {
	return s.setArchived(ctx, noteID, userID, false)
}

func (s *NoteService) setArchived(ctx context.Context, noteID, userID string, archived bool) (*model.Note, error) {
	id, err := s.store.ParseID(noteID)
	if err != nil {
		return nil, err
	}
	return s.store.Notes().SetArchived(ctx, id, userID, archived, s.now())
}

// Delete removes the note permanently.
func (s *NoteService) Delete(ctx context.Context, noteID string) error {
	id, err := s.store.ParseID(noteID)
	if err != nil {
		return err
	}
	return s.store.Notes().Delete(ctx, id)
}
