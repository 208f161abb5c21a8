package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	_ "modernc.org/sqlite"
)

var (
	mu     sync.Mutex
	shared *sql.DB
	group  singleflight.Group
)

// Shared returns the process-wide database handle, opening it lazily on first
// use and caching it for the process lifetime. Concurrent first callers are
// collapsed onto a single in-flight open; a failed open is not cached, so the
// next caller retries.
func Shared(path string) (*sql.DB, error) {
	mu.Lock()
	if shared != nil {
		conn := shared
		mu.Unlock()
		return conn, nil
	}
	mu.Unlock()

	v, err, _ := group.Do("open", func() (any, error) {
		conn, err := Open(path)
		if err != nil {
			return nil, err
		}
		mu.Lock()
		shared = conn
		mu.Unlock()
		return conn, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.DB), nil
}

// Close releases the shared handle if it was opened.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if shared != nil {
		_ = shared.Close()
		shared = nil
	}
}

// Open opens (and migrates) the database at path. Most callers want Shared;
// Open exists for tests and tooling that need an isolated handle.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", BuildDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := Migrate(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

// BuildDSN embeds the pragmas in the DSN so that every connection in the
// pool gets them, not just the one a plain Exec would touch.
func BuildDSN(path string) string {
	pragmas := []string{
		"journal_mode(WAL)",
		"foreign_keys(ON)",
		"busy_timeout(30000)",
		"synchronous(NORMAL)",
	}

	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	return "file:" + path + "?" + q.Encode()
}
