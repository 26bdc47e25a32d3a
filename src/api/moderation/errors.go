package moderation

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth means the caller could not be resolved to a known user.
	ErrAuth = errors.New("caller not authorized")
	// ErrNotFound means the proposal (or target record) does not exist.
	ErrNotFound = errors.New("proposal not found")
	// ErrInvalidState means a review transition was attempted on a
	// proposal that already left pending.
	ErrInvalidState = errors.New("proposal already reviewed")
	// ErrDuplicateSlug means the derived slug collided with an existing
	// published record.
	ErrDuplicateSlug = errors.New("slug already exists")
)

// InvalidPayloadError names the canonical field that could not be derived.
type InvalidPayloadError struct {
	ContentType string
	Field       string
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("invalid %s payload: missing %q", e.ContentType, e.Field)
}
