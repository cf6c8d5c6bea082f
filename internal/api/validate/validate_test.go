package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MohammedPathariya/NoteNest/internal/model"
)

type sample struct {
	UserID string  `json:"user_id" validate:"notblank"`
	Name   string  `json:"name" validate:"notblank,max=5"`
	Color  string  `json:"color_code,omitempty" validate:"omitempty,hexcolor"`
	Rename *string `json:"rename,omitempty" validate:"omitempty,notblank,max=5"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(sample{UserID: "u1", Name: "Work", Color: "#abc"}))
	assert.NoError(t, Struct(sample{UserID: "u1", Name: "Work"}))
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{UserID: " ", Name: "toolong", Color: "red"})
	assert.ErrorIs(t, err, model.ErrValidation)
	msg := err.Error()
	assert.Contains(t, msg, "user_id must not be blank")
	assert.Contains(t, msg, "name must not exceed 5 characters")
	assert.Contains(t, msg, "color_code must be a hex color")
	// Sorted by field name.
	assert.Less(t, strings.Index(msg, "color_code"), strings.Index(msg, "name"))
}

func TestStruct_MaxCountsRunes(t *testing.T) {
	assert.NoError(t, Struct(sample{UserID: "u1", Name: "ééééé"}))
}

func TestStruct_PointerFields(t *testing.T) {
	blank := "  "
	err := Struct(sample{UserID: "u1", Name: "ok", Rename: &blank})
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Contains(t, err.Error(), "rename must not be blank")
}
