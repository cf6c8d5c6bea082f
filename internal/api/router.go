package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MohammedPathariya/NoteNest/internal/api/recovery"
	"github.com/MohammedPathariya/NoteNest/internal/services"
)

// NewRouter wires every HTTP route to its handler.
func NewRouter(svcs *services.Set) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	// Categories
	categories := NewCategoryHandler(svcs.Categories)
	root.HandleFunc("/api/categories", categories.CreateCategory).Methods("POST")
	root.HandleFunc("/api/categories/{userId}", categories.ListCategories).Methods("GET")
	root.HandleFunc("/api/categories/{categoryId}", categories.UpdateCategory).Methods("PUT")
	root.HandleFunc("/api/categories/{categoryId}", categories.DeleteCategory).Methods("DELETE")

	// Notes
	notes := NewNoteHandler(svcs.Notes)
	root.HandleFunc("/api/notes", notes.CreateNote).Methods("POST")
	root.HandleFunc("/api/notes/{userId}", notes.ListNotes).Methods("GET")
	root.HandleFunc("/api/notes/{userId}/{noteId}", notes.GetNote).Methods("GET")
	root.HandleFunc("/api/notes/{noteId}", notes.UpdateNote).Methods("PUT")
	root.HandleFunc("/api/notes/{noteId}/archive", notes.ArchiveNote).Methods("PUT")
	root.HandleFunc("/api/notes/{noteId}/unarchive", notes.UnarchiveNote).Methods("PUT")
	root.HandleFunc("/api/notes/{noteId}", notes.DeleteNote).Methods("DELETE")

	smart := NewSmartNoteHandler(svcs.SmartNotes)
	root.HandleFunc("/api/smart-notes", smart.CreateSmartNote).Methods("POST")

	analytics := NewAnalyticsHandler(svcs.Analytics)
	root.HandleFunc("/api/analytics/{userId}", analytics.ActiveCounts).Methods("GET")

	root.HandleFunc("/api/health", NewHealthHandler().CheckHealth).Methods("GET")
	root.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return root
}
