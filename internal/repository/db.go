package repository

import (
	"database/sql"
	"time"
)

// ConnFunc yields the shared database handle. Repositories acquire the
// connection through it on every operation instead of holding their own,
// so the process-wide handle stays the single point of establishment.
type ConnFunc func() (*sql.DB, error)

// StaticConn wraps an already-open handle, for tests and tooling.
func StaticConn(db *sql.DB) ConnFunc {
	return func() (*sql.DB, error) { return db, nil }
}

// sortableTimeLayout pads fractional seconds to fixed width. RFC3339Nano
// trims trailing zeros, and a trimmed "…00.5Z" sorts after "…00.52Z" under
// SQLite's lexicographic TEXT comparison, so trimmed values cannot serve as
// an ORDER BY key.
const sortableTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(sortableTimeLayout)
}
