package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/MohammedPathariya/NoteNest/internal/classifier"
	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/store"
)

// SmartNoteService creates notes whose category is chosen by a classifier.
// Classification is best effort: any failure lands the note in Uncategorized.
type SmartNoteService struct {
	store    store.Store
	notes    *NoteService
	resolver *UncategorizedResolver
	auto     *classifier.Auto
}

func NewSmartNoteService(s store.Store, notes *NoteService, r *UncategorizedResolver, auto *classifier.Auto) *SmartNoteService {
	return &SmartNoteService{store: s, notes: notes, resolver: r, auto: auto}
}

type CreateSmartNoteInput struct {
	UserID  string
	Content string
}

func (s *SmartNoteService) Create(ctx context.Context, in CreateSmartNoteInput) (*model.Note, error) {
	if err := requireUser(in.UserID); err != nil {
		return nil, err
	}
	if err := checkContent(in.Content); err != nil {
		return nil, err
	}
	unc, err := s.resolver.GetOrCreate(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	cats, err := s.store.Categories().List(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}

	pred := s.auto.Predict(ctx, in.Content, names)
	target := unc
	var ref *string
	if !pred.Fallback {
		for _, c := range cats {
			if c.Name == pred.Category {
				target = c
				break
			}
		}
		r := pred.Ref
		ref = &r
	}

	if target.ID != unc.ID {
		// The predicted category may have been deleted while we were classifying.
		if _, err := s.notes.ownedCategory(ctx, target.ID, in.UserID); errors.Is(err, model.ErrNotFound) {
			log.Warn().Str("user_id", in.UserID).Str("category", target.Name).
				Msg("predicted category vanished; using Uncategorized")
			target, ref = unc, nil
		} else if err != nil {
			return nil, err
		}
	}

	n, err := s.notes.insert(ctx, in.UserID, target.ID, in.Content, nil, ref)
	if err != nil {
		return nil, err
	}

	notesCreatedTotal.WithLabelValues("smart").Inc()
	log.Debug().
		Str("user_id", in.UserID).
		Str("category", target.Name).
		Bool("fallback", pred.Fallback).
		Msg("smart note created")
	return n, nil
}
