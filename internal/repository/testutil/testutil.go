package testutil

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"recap/backend/internal/db"
	"recap/backend/internal/snowflake"
)

var snowflakeOnce sync.Once

// NewTestDB opens a migrated database in a per-test temp dir and closes it
// when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	snowflakeOnce.Do(func() {
		if err := snowflake.Init(1); err != nil {
			t.Fatalf("init snowflake: %v", err)
		}
	})

	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}
