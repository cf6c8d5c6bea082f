package model

import "errors"

var (
	// ErrInvalidReference reports an id string that is not a well-formed identifier for the store.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrNotFound reports a well-formed id that matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName reports a category name already taken by the same user.
	ErrDuplicateName = errors.New("duplicate category name")

	// ErrProtectedCategory guards the Uncategorized category from delete and rename.
	ErrProtectedCategory = errors.New("protected category")

	// ErrCategoryInUse is returned by stores that refuse to drop a category still referenced by notes.
	ErrCategoryInUse = errors.New("category still referenced by notes")

	// ErrClassificationUnavailable is absorbed by the smart note flow and never reaches callers.
	ErrClassificationUnavailable = errors.New("classification unavailable")

	ErrValidation = errors.New("validation error")
)
