// Package invariants audits one user's stored categories and notes against
// the referential rules the services maintain. It reads through store.Store
// only, so the same audit runs against every adapter.
package invariants

import (
	"context"
	"fmt"
	"sort"

	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/store"
)

const (
	RuleUniqueName           = "unique_name"
	RuleSingleUncategorized  = "single_uncategorized"
	RuleUncategorizedPresent = "uncategorized_present"
	RuleNoteCategoryExists   = "note_category_exists"
)

type Violation struct {
	Rule   string
	Detail string
}

func (v Violation) String() string { return v.Rule + ": " + v.Detail }

// Check returns every violation found for userID, sorted by rule then detail.
// An empty result means the user's data is consistent.
func Check(ctx context.Context, st store.Store, userID string) ([]Violation, error) {
	cats, err := st.Categories().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	var out []Violation
	byID := make(map[string]*model.Category, len(cats))
	names := make(map[string]int, len(cats))
	uncategorized := 0
	for _, c := range cats {
		byID[c.ID] = c
		names[c.Name]++
		if c.IsUncategorized() {
			uncategorized++
		}
	}
	for name, n := range names {
		if n > 1 {
			out = append(out, Violation{RuleUniqueName, fmt.Sprintf("%q used by %d categories", name, n)})
		}
	}
	if uncategorized > 1 {
		out = append(out, Violation{RuleSingleUncategorized, fmt.Sprintf("%d categories named %s", uncategorized, model.UncategorizedName)})
	}

	total := 0
	for _, archived := range []bool{false, true} {
		notes, err := st.Notes().List(ctx, userID, archived)
		if err != nil {
			return nil, fmt.Errorf("list notes (archived=%t): %w", archived, err)
		}
		total += len(notes)
		for _, n := range notes {
			if _, ok := byID[n.CategoryID]; !ok {
				out = append(out, Violation{RuleNoteCategoryExists, fmt.Sprintf("note %s references %s", n.ID, n.CategoryID)})
			}
		}
	}
	if total > 0 && uncategorized == 0 {
		out = append(out, Violation{RuleUncategorizedPresent, fmt.Sprintf("%d notes but no %s category", total, model.UncategorizedName)})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Rule != out[j].Rule {
			return out[i].Rule < out[j].Rule
		}
		return out[i].Detail < out[j].Detail
	})
	return out, nil
}
