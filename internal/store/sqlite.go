package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/MrSnakeDoc/marks/internal/domain"
)

// SQLiteStore implements Store on a single-file SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// Open opens (creating if absent) the database file at path and ensures
// the schema is current. Use ":memory:" for an ephemeral database.
func Open(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	var dsn string
	if path == ":memory:" {
		dsn = path + "?_pragma=journal_mode(DELETE)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"
	} else {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if path == ":memory:" {
		// Each pooled connection would otherwise see its own empty
		// in-memory database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(context.Background(), db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

type bookmarkRow struct {
	ID           int64          `db:"id"`
	Label        sql.NullString `db:"label"`
	URL          string         `db:"url"`
	DateCreated  string         `db:"date_created"`
	DateModified string         `db:"date_modified"`
}

func (r *bookmarkRow) toBookmark() domain.Bookmark {
	b := domain.Bookmark{
		ID:  r.ID,
		URL: r.URL,
	}
	if r.Label.Valid {
		b.Label = r.Label.String
	}
	b.DateCreated = parseSQLiteTime(r.DateCreated)
	b.DateModified = parseSQLiteTime(r.DateModified)
	return b
}

const selectColumns = "id, label, url, date_created, date_modified"

// List returns all bookmarks in insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Bookmark, error) {
	var rows []bookmarkRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT "+selectColumns+" FROM bookmarks ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}

	bookmarks := make([]domain.Bookmark, len(rows))
	for i := range rows {
		bookmarks[i] = rows[i].toBookmark()
	}
	return bookmarks, nil
}

// Insert stores a new bookmark. The duplicate lookup and the insert run
// in one transaction, and the unique index on url backs the check, so
// two concurrent inserts of the same URL cannot both land.
func (s *SQLiteStore) Insert(ctx context.Context, label, url string, now time.Time) (*domain.Bookmark, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if existing, err := getByURL(ctx, tx, url); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &domain.DuplicateURLError{Existing: *existing}
	}

	stamp := now.UTC().Format(time.RFC3339)
	res, err := tx.ExecContext(ctx,
		"INSERT INTO bookmarks (label, url, date_created, date_modified) VALUES (?, ?, ?, ?)",
		nullableLabel(label), url, stamp, stamp)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost a race with a concurrent insert of the same URL.
			// Release the transaction before re-reading the winner.
			tx.Rollback()
			return nil, s.duplicateOf(ctx, url)
		}
		return nil, fmt.Errorf("insert bookmark: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert: %w", err)
	}

	created := now.UTC().Truncate(time.Second)
	return &domain.Bookmark{
		ID:           id,
		Label:        label,
		URL:          url,
		DateCreated:  created,
		DateModified: created,
	}, nil
}

// Delete removes a bookmark by id and returns the removed record.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) (*domain.Bookmark, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var row bookmarkRow
	err = tx.GetContext(ctx, &row,
		"SELECT "+selectColumns+" FROM bookmarks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM bookmarks WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("delete bookmark: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit delete: %w", err)
	}

	removed := row.toBookmark()
	return &removed, nil
}

// Ping reports whether the database file is still reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// getByURL returns the bookmark with the given URL, or nil when absent.
func getByURL(ctx context.Context, q sqlx.QueryerContext, url string) (*domain.Bookmark, error) {
	var row bookmarkRow
	err := sqlx.GetContext(ctx, q, &row,
		"SELECT "+selectColumns+" FROM bookmarks WHERE url = ?", url)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark by url: %w", err)
	}
	b := row.toBookmark()
	return &b, nil
}

// duplicateOf builds the duplicate error for a URL that is known to exist.
func (s *SQLiteStore) duplicateOf(ctx context.Context, url string) error {
	existing, err := getByURL(ctx, s.db, url)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("bookmark for %s vanished after unique violation", url)
	}
	return &domain.DuplicateURLError{Existing: *existing}
}

func nullableLabel(label string) sql.NullString {
	return sql.NullString{String: label, Valid: label != ""}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func parseSQLiteTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}
