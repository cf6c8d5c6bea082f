package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MohammedPathariya/NoteNest/internal/api/respond"
	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/services"
)

type NoteHandler struct {
	svc *services.NoteService
}

func NewNoteHandler(svc *services.NoteService) *NoteHandler { return &NoteHandler{svc: svc} }

type createNoteRequest struct {
	UserID     string   `json:"user_id" validate:"notblank"`
	CategoryID string   `json:"category_id" validate:"notblank"`
	Content    string   `json:"content" validate:"notblank,max=1000"`
	Tags       []string `json:"tags,omitempty"`
	LLMRef     *string  `json:"llm_ref,omitempty"`
}

type updateNoteRequest struct {
	CategoryID *string   `json:"category_id,omitempty" validate:"omitempty,notblank"`
	Content    *string   `json:"content,omitempty" validate:"omitempty,notblank,max=1000"`
	Tags       *[]string `json:"tags,omitempty"`
	Archived   *bool     `json:"archived,omitempty"`
	IsReminder *bool     `json:"is_reminder,omitempty"`
	LLMRef     *string   `json:"llm_ref,omitempty"`
}

func (u updateNoteRequest) patch() model.NotePatch {
	return model.NotePatch{
		CategoryID: u.CategoryID,
		Content:    u.Content,
		Tags:       u.Tags,
		Archived:   u.Archived,
		IsReminder: u.IsReminder,
		LLMRef:     u.LLMRef,
	}
}

// CreateNote POST /api/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if !decode(w, r, &req) {
		return
	}
	out, err := h.svc.Create(r.Context(), services.CreateNoteInput{
		UserID:     req.UserID,
		CategoryID: req.CategoryID,
		Content:    req.Content,
		Tags:       req.Tags,
		LLMRef:     req.LLMRef,
	})
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListNotes GET /api/notes/{userId}?archived=
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	archived, err := queryBool(r, "archived")
	if err != nil {
		respond.WriteBadRequest(w, "archived must be true or false")
		return
	}
	notes, err := h.svc.List(r.Context(), mux.Vars(r)["userId"], archived)
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	if notes == nil {
		notes = []*model.Note{}
	}
	respond.WriteJSON(w, http.StatusOK, notes)
}

// GetNote GET /api/notes/{userId}/{noteId}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	n, err := h.svc.Get(r.Context(), vars["noteId"])
	if err == nil && n.UserID != vars["userId"] {
		err = model.ErrNotFound
	}
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, n)
}

// UpdateNote PUT /api/notes/{noteId}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req updateNoteRequest
	if !decode(w, r, &req) {
		return
	}
	out, err := h.svc.Update(r.Context(), mux.Vars(r)["noteId"], req.patch())
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// ArchiveNote PUT /api/notes/{noteId}/archive?user_id=
func (h *NoteHandler) ArchiveNote(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Archive(r.Context(), mux.Vars(r)["noteId"], r.URL.Query().Get("user_id"))
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// UnarchiveNote PUT /api/notes/{noteId}/unarchive?user_id=
func (h *NoteHandler) UnarchiveNote(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Unarchive(r.Context(), mux.Vars(r)["noteId"], r.URL.Query().Get("user_id"))
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeleteNote DELETE /api/notes/{noteId}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["noteId"]); err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
