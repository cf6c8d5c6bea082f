package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MohammedPathariya/NoteNest/internal/model"
)

// clock returns the instant stamped on writes. Millisecond precision keeps
// timestamps identical across every store adapter.
func clock() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user_id is required", model.ErrValidation)
	}
	return nil
}

func checkCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", model.ErrValidation)
	}
	if utf8.RuneCountInString(name) > model.MaxCategoryNameLen {
		return "", fmt.Errorf("%w: name exceeds %d characters", model.ErrValidation, model.MaxCategoryNameLen)
	}
	return name, nil
}

func checkContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", model.ErrValidation)
	}
	if utf8.RuneCountInString(content) > model.MaxContentLen {
		return fmt.Errorf("%w: content exceeds %d characters", model.ErrValidation, model.MaxContentLen)
	}
	return nil
}
