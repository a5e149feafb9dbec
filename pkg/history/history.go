// Package history optionally records one row per monitoring cycle into a
// local SQLite database. The loop only ever writes; nothing is read back at
// runtime, so the database is purely for offline inspection.
package history

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	pkgerrors "github.com/pkg/errors"

	"github.com/battalert/battalert/pkg/monitor"
)

const schema = `
CREATE TABLE IF NOT EXISTS cycles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp INTEGER NOT NULL,
	level INTEGER NOT NULL,
	state TEXT NOT NULL,
	discharging INTEGER NOT NULL,
	full INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cycles_ts ON cycles(timestamp);
`

// Recorder writes cycle samples to SQLite.
type Recorder struct {
	db *sql.DB
}

// Open creates or opens the database at path and ensures the schema.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open history database %s", path)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, pkgerrors.Wrap(err, "failed to create history schema")
	}
	return &Recorder{db: db}, nil
}

// Record stores one completed cycle.
func (r *Recorder) Record(at time.Time, snap monitor.Snapshot, state monitor.State) error {
	_, err := r.db.Exec(
		`INSERT INTO cycles (timestamp, level, state, discharging, full) VALUES (?, ?, ?, ?, ?)`,
		at.Unix(), snap.Level, state.String(), boolToInt(snap.Discharging), boolToInt(snap.Full),
	)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to insert cycle sample")
	}
	return nil
}

// CountSince returns the number of samples recorded at or after the given
// time. Used by tests and ad-hoc tooling.
func (r *Recorder) CountSince(t time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM cycles WHERE timestamp >= ?`, t.Unix()).Scan(&n)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "failed to count cycle samples")
	}
	return n, nil
}

func (r *Recorder) Close() error {
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
