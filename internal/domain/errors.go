package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested bookmark does not exist.
	ErrNotFound = errors.New("bookmark not found")

	// ErrInvalidURL indicates input that cannot be parsed as a URL
	// with a scheme and a host.
	ErrInvalidURL = errors.New("invalid URL: scheme and host are required")
)

// DuplicateURLError reports a create that collided with an existing
// bookmark. It carries the conflicting record so callers can name it.
type DuplicateURLError struct {
	Existing Bookmark
}

func (e *DuplicateURLError) Error() string {
	return fmt.Sprintf("bookmark with label: %s already exists for %s",
		e.Existing.Label, e.Existing.URL)
}
