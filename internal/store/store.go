package store

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/marks/internal/domain"
)

// Store is the persistence contract for bookmark rows.
//
// Every mutation is atomic: either the row change is durable when the
// call returns, or nothing happened. Implementations own the on-disk
// schema; callers never see raw rows.
type Store interface {
	// List returns all bookmarks in insertion (id) order.
	List(ctx context.Context) ([]domain.Bookmark, error)

	// Insert stores a new bookmark with both timestamps set to now and
	// returns it with its assigned id. If a bookmark with the same URL
	// already exists, it fails with *domain.DuplicateURLError carrying
	// the existing record.
	Insert(ctx context.Context, label, url string, now time.Time) (*domain.Bookmark, error)

	// Delete removes the bookmark with the given id and returns the
	// removed record, or domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) (*domain.Bookmark, error)

	// Ping reports whether the backing database is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying database handle.
	Close() error
}
