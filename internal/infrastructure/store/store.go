// Package store persists the URLs of articles that were already notified.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocraft/dbr/v2"
	"github.com/tesso57/things-rss/internal/application/usecase"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const tableName = "articles"

const initTable = `
CREATE TABLE IF NOT EXISTS articles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	site TEXT NOT NULL,
	url TEXT NOT NULL UNIQUE
);`

// synchronous=FULL makes a committed insert survive power loss in WAL mode.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = FULL",
	"PRAGMA busy_timeout = 10000",
}

// Record is one persisted seen-article row.
type Record struct {
	ID   int64  `db:"id"`
	Site string `db:"site"`
	URL  string `db:"url"`
}

// Store is a sqlite-backed set of notified article URLs.
type Store struct {
	conn *dbr.Connection
	sess *dbr.Session
}

// Open opens the database at path, creating parent directories and the
// articles table when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, &usecase.StoreError{Op: "open", Err: err}
		}
	}

	conn, err := dbr.Open("sqlite", path, nil)
	if err != nil {
		return nil, &usecase.StoreError{Op: "open", Err: err}
	}
	conn.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			_ = conn.Close()
			return nil, &usecase.StoreError{Op: "open", Err: fmt.Errorf("%s: %w", p, err)}
		}
	}

	sess := conn.NewSession(nil)
	if _, err := sess.Exec(initTable); err != nil {
		_ = conn.Close()
		return nil, &usecase.StoreError{Op: "open", Err: fmt.Errorf("create table: %w", err)}
	}

	return new(Store{conn: conn, sess: sess}), nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Exists reports whether url was recorded by an earlier notification.
func (s *Store) Exists(ctx context.Context, url string) (bool, error) {
	var found string
	err := s.sess.Select("url").From(tableName).
		Where("url = ?", url).Limit(1).LoadOneContext(ctx, &found)
	if errors.Is(err, dbr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, &usecase.StoreError{Op: "exists", Err: err}
	}
	return true, nil
}

// Record inserts url for site. A url that is already present yields a
// StoreError wrapping usecase.ErrDuplicateKey and leaves the row untouched.
func (s *Store) Record(ctx context.Context, site, url string) error {
	_, err := s.sess.InsertInto(tableName).
		Columns("site", "url").
		Values(site, url).ExecContext(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return &usecase.StoreError{Op: "record", Err: fmt.Errorf("%w: %s", usecase.ErrDuplicateKey, url)}
		}
		return &usecase.StoreError{Op: "record", Err: err}
	}
	return nil
}

// Records returns all rows in insertion order.
func (s *Store) Records(ctx context.Context) ([]Record, error) {
	var out []Record
	if _, err := s.sess.Select("id", "site", "url").From(tableName).
		OrderAsc("id").LoadContext(ctx, &out); err != nil {
		return nil, &usecase.StoreError{Op: "records", Err: err}
	}
	return out, nil
}

// Count returns the number of recorded URLs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.sess.Select("count(*)").From(tableName).LoadOneContext(ctx, &n); err != nil {
		return 0, &usecase.StoreError{Op: "count", Err: err}
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	if serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	// Primary code only when extended codes are off.
	return serr.Code() == sqlite3.SQLITE_CONSTRAINT && strings.Contains(serr.Error(), "UNIQUE")
}
