package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/store"
)

func setupCatalog(t *testing.T) *Catalog {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s)
}

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	urls := []string{
		"https://one.example.com",
		"https://two.example.com",
		"https://three.example.com",
	}

	var lastID int64
	for _, u := range urls {
		created, err := c.Create(ctx, "", u)
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", u, err)
		}
		if created.ID <= lastID {
			t.Errorf("Expected strictly increasing id, got %d after %d", created.ID, lastID)
		}
		lastID = created.ID
	}
}

func TestCreateNormalizesURL(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	created, err := c.Create(ctx, "X", "http://example.com/a b")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.URL != "http://example.com/a%20b" {
		t.Errorf("Expected normalized URL, got %s", created.URL)
	}
	if created.Label != "X" {
		t.Errorf("Expected label X, got %s", created.Label)
	}

	listed, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 1 || listed[0].URL != created.URL || listed[0].Label != "X" {
		t.Errorf("Round-trip mismatch: %+v", listed)
	}
}

func TestCreateRejectsSchemelessURL(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	_, err := c.Create(ctx, "", "example.com")
	if !errors.Is(err, domain.ErrInvalidURL) {
		t.Fatalf("Expected ErrInvalidURL, got %v", err)
	}

	// Nothing may be stored for a rejected create.
	listed, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("Expected empty store, got %d entries", len(listed))
	}
}

func TestCreateDuplicateURL(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	first, err := c.Create(ctx, "Docs", "https://docs.rs")
	if err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	_, err = c.Create(ctx, "Docs2", "https://docs.rs")
	var dup *domain.DuplicateURLError
	if !errors.As(err, &dup) {
		t.Fatalf("Expected DuplicateURLError, got %v", err)
	}
	if dup.Existing.ID != first.ID || dup.Existing.Label != "Docs" || dup.Existing.URL != "https://docs.rs" {
		t.Errorf("Conflict should carry the existing record, got %+v", dup.Existing)
	}

	listed, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("Duplicate create must not change the store, got %d entries", len(listed))
	}
}

func TestCreateSetsBothTimestamps(t *testing.T) {
	c := setupCatalog(t)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	created, err := c.Create(context.Background(), "", "https://example.com")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !created.DateCreated.Equal(fixed) {
		t.Errorf("Expected DateCreated %v, got %v", fixed, created.DateCreated)
	}
	if !created.DateModified.Equal(fixed) {
		t.Errorf("Expected DateModified %v, got %v", fixed, created.DateModified)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	first, err := c.Create(ctx, "One", "https://one.example.com")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := c.Create(ctx, "Two", "https://two.example.com"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	removed, err := c.Delete(ctx, first.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed.ID != first.ID || removed.Label != "One" {
		t.Errorf("Expected removed record %+v, got %+v", first, removed)
	}

	listed, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("Expected 1 bookmark left, got %d", len(listed))
	}
	if listed[0].ID == first.ID {
		t.Errorf("Deleted id %d still present", first.ID)
	}
}

func TestDeleteMissingLeavesStoreUnchanged(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	if _, err := c.Create(ctx, "", "https://example.com"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := c.Delete(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	listed, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("Failed delete must not change the store, got %d entries", len(listed))
	}
}

func TestHealthy(t *testing.T) {
	c := setupCatalog(t)
	if err := c.Healthy(context.Background()); err != nil {
		t.Errorf("Healthy failed: %v", err)
	}
}
