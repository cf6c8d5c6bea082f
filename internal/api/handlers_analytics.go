package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MohammedPathariya/NoteNest/internal/api/respond"
	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/services"
)

type AnalyticsHandler struct {
	svc *services.AnalyticsService
}

func NewAnalyticsHandler(svc *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// ActiveCounts GET /api/analytics/{userId}
func (h *AnalyticsHandler) ActiveCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.ActiveCountsByCategory(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	if counts == nil {
		counts = []model.CategoryCount{}
	}
	respond.WriteJSON(w, http.StatusOK, counts)
}
