// Package classifier predicts a category name for note text from a list of
// candidate names. Implementations are pluggable; Auto wraps any of them
// with a bounded wait, retries and a fallback to the Uncategorized category.
package classifier

import (
	"context"
	"errors"
	"strings"

	"github.com/MohammedPathariya/NoteNest/internal/model"
)

// Classifier maps text to one of candidates.
type Classifier interface {
	// Ref identifies the mechanism; it is recorded on notes it categorised.
	Ref() string
	Classify(ctx context.Context, text string, candidates []string) (string, error)
}

// ErrNoMatch is returned when a classifier has no confident answer. It is not retried.
var ErrNoMatch = errors.New("no confident match")

// Match resolves raw classifier output to a candidate name. Surrounding
// whitespace, quotes and trailing punctuation are ignored and case is folded.
// The Uncategorized name always matches even when absent from candidates.
func Match(raw string, candidates []string) (string, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, "\"'`*")
	cleaned = strings.TrimRight(cleaned, ".!")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "", false
	}
	for _, c := range candidates {
		if c == cleaned {
			return c, true
		}
	}
	var found string
	matches := 0
	for _, c := range candidates {
		if strings.EqualFold(c, cleaned) {
			found = c
			matches++
		}
	}
	if matches == 1 {
		return found, true
	}
	if strings.EqualFold(cleaned, model.UncategorizedName) {
		return model.UncategorizedName, true
	}
	return "", false
}
