package api

import (
	"net/http"

	"github.com/MohammedPathariya/NoteNest/internal/api/respond"
	"github.com/MohammedPathariya/NoteNest/internal/services"
)

// SmartNoteHandler creates notes whose category is picked by the classifier.
type SmartNoteHandler struct {
	svc *services.SmartNoteService
}

func NewSmartNoteHandler(svc *services.SmartNoteService) *SmartNoteHandler {
	return &SmartNoteHandler{svc: svc}
}

type createSmartNoteRequest struct {
	UserID  string `json:"user_id" validate:"notblank"`
	Content string `json:"content" validate:"notblank,max=1000"`
}

// CreateSmartNote POST /api/smart-notes
func (h *SmartNoteHandler) CreateSmartNote(w http.ResponseWriter, r *http.Request) {
	var req createSmartNoteRequest
	if !decode(w, r, &req) {
		return
	}
	out, err := h.svc.Create(r.Context(), services.CreateSmartNoteInput{
		UserID:  req.UserID,
		Content: req.Content,
	})
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}
