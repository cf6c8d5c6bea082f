package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MohammedPathariya/NoteNest/internal/api/respond"
	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/services"
)

type CategoryHandler struct {
	svc *services.CategoryService
}

func NewCategoryHandler(svc *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

type createCategoryRequest struct {
	UserID      string  `json:"user_id" validate:"notblank"`
	Name        string  `json:"name" validate:"notblank,max=50"`
	Description *string `json:"description,omitempty"`
	ColorCode   string  `json:"color_code,omitempty" validate:"omitempty,hexcolor"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,notblank,max=50"`
	Description *string `json:"description,omitempty"`
	ColorCode   *string `json:"color_code,omitempty" validate:"omitempty,hexcolor"`
}

// CreateCategory POST /api/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !decode(w, r, &req) {
		return
	}
	out, err := h.svc.Create(r.Context(), services.CreateCategoryInput{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		ColorCode:   req.ColorCode,
	})
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListCategories GET /api/categories/{userId}
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.List(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	if cats == nil {
		cats = []*model.Category{}
	}
	respond.WriteJSON(w, http.StatusOK, cats)
}

// UpdateCategory PUT /api/categories/{categoryId}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if !decode(w, r, &req) {
		return
	}
	patch := model.CategoryPatch{Name: req.Name, Description: req.Description, ColorCode: req.ColorCode}
	if patch.Empty() {
		respond.WriteBadRequest(w, "no fields to update")
		return
	}
	out, err := h.svc.Update(r.Context(), mux.Vars(r)["categoryId"], patch)
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeleteCategory DELETE /api/categories/{categoryId}?user_id=
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	moved, err := h.svc.Delete(r.Context(), mux.Vars(r)["categoryId"], r.URL.Query().Get("user_id"))
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Category deleted and notes moved to " + model.UncategorizedName,
		"reassigned": moved,
	})
}
