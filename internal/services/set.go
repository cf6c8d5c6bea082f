package services

import (
	"github.com/MohammedPathariya/NoteNest/internal/classifier"
	"github.com/MohammedPathariya/NoteNest/internal/store"
)

// Set is every service wired against one store and classifier.
type Set struct {
	Resolver   *UncategorizedResolver
	Categories *CategoryService
	Notes      *NoteService
	SmartNotes *SmartNoteService
	Analytics  *AnalyticsService
}

func NewSet(st store.Store, auto *classifier.Auto) *Set {
	resolver := NewUncategorizedResolver(st)
	notes := NewNoteService(st, resolver)
	return &Set{
		Resolver:   resolver,
		Categories: NewCategoryService(st, resolver, NewCascadeReassigner(st, resolver)),
		Notes:      notes,
		SmartNotes: NewSmartNoteService(st, notes, resolver, auto),
		Analytics:  NewAnalyticsService(st),
	}
}
