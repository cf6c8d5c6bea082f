package services

import (
	"context"
	"sort"

	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/store"
)

type AnalyticsService struct {
	store store.Store
}

func NewAnalyticsService(s store.Store) *AnalyticsService {
	return &AnalyticsService{store: s}
}

// ActiveCountsByCategory returns one row per category holding at least one
// non-archived note, largest first, ties broken by name.
func (s *AnalyticsService) ActiveCountsByCategory(ctx context.Context, userID string) ([]model.CategoryCount, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	counts, err := s.store.Notes().ActiveCountsByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].NoteCount != counts[j].NoteCount {
			return counts[i].NoteCount > counts[j].NoteCount
		}
		return counts[i].CategoryName < counts[j].CategoryName
	})
	return counts, nil
}
