// Package catalog enforces the bookmark domain invariants atop raw storage:
// URL normalization and uniqueness, timestamp bookkeeping, and typed
// outcomes for the API layer to map to responses.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/store"
)

// Catalog is the bookmark repository. It owns the only write path to the
// store; handlers never touch storage directly.
type Catalog struct {
	store store.Store
	now   func() time.Time
}

// New creates a Catalog over the given store.
func New(s store.Store) *Catalog {
	return &Catalog{
		store: s,
		now:   time.Now,
	}
}

// List returns all bookmarks in insertion order. An empty store yields
// an empty slice, not an error.
func (c *Catalog) List(ctx context.Context) ([]domain.Bookmark, error) {
	return c.store.List(ctx)
}

// Create validates and stores a new bookmark.
//
// The raw URL is normalized to its canonical encoded form first;
// inputs without a scheme and host fail with domain.ErrInvalidURL.
// A normalized URL equal to an existing bookmark's fails with
// *domain.DuplicateURLError carrying the conflicting record.
func (c *Catalog) Create(ctx context.Context, label, rawURL string) (*domain.Bookmark, error) {
	normalized, err := domain.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	created, err := c.store.Insert(ctx, label, normalized, c.now())
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Delete removes the bookmark with the given id and returns the removed
// record for confirmation messaging. A missing id fails with
// domain.ErrNotFound; deleting twice simply reports not found again.
func (c *Catalog) Delete(ctx context.Context, id int64) (*domain.Bookmark, error) {
	removed, err := c.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// Healthy reports whether the backing store is reachable.
func (c *Catalog) Healthy(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("store unavailable: %w", err)
	}
	return nil
}
