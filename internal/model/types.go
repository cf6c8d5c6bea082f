package model

import (
	"strings"
	"time"
)

const (
	UncategorizedName        = "Uncategorized"
	UncategorizedDescription = "Notes that lost their original category or need review."
	UncategorizedColor       = "#808080"
	DefaultCategoryColor     = "#3B82F6"

	MaxCategoryNameLen = 50
	MaxContentLen      = 1000
)

// Category is a user-scoped bucket that notes attach to.
type Category struct {
	ID          string  `json:"_id"`
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ColorCode   string  `json:"color_code"`
}

// IsUncategorized reports whether c is the user's fallback category.
func (c *Category) IsUncategorized() bool { return c != nil && c.Name == UncategorizedName }

// CategoryPatch carries a partial category update; nil fields are left untouched.
type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ColorCode   *string `json:"color_code,omitempty"`
}

func (p CategoryPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.ColorCode == nil
}

type Note struct {
	ID         string    `json:"_id"`
	UserID     string    `json:"user_id"`
	CategoryID string    `json:"category_id"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Archived   bool      `json:"archived"`
	IsReminder bool      `json:"is_reminder"`
	LLMRef     *string   `json:"llm_ref,omitempty"`
}

// NotePatch carries a partial note update. CategoryID is the raw boundary
// string; stores receive it only after it has been parsed and checked.
type NotePatch struct {
	CategoryID *string   `json:"category_id,omitempty"`
	Content    *string   `json:"content,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
	Archived   *bool     `json:"archived,omitempty"`
	IsReminder *bool     `json:"is_reminder,omitempty"`
	LLMRef     *string   `json:"llm_ref,omitempty"`
}

// CategoryCount is one row of the dashboard aggregation.
type CategoryCount struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	ColorCode    string `json:"color_code"`
	NoteCount    int64  `json:"note_count"`
}

// NormalizeTags trims tags, drops empties and keeps order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
