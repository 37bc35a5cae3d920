// Package chronicle keeps a SQLite ledger of run history: one row per
// completed simulation day plus notable events. The ledger is append-only
// bookkeeping for later analysis; the simulation never reads it back to
// restore state.
package chronicle

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection for the run ledger.
type DB struct {
	conn  *sqlx.DB
	runID int64
}

// DaySummary is one completed day of a run.
type DaySummary struct {
	Day           int     `db:"day"`
	Alive         int     `db:"alive"`
	Spawned       int     `db:"spawned"`
	Died          int     `db:"died"`
	Eaten         int     `db:"eaten"`
	RockDeaths    int     `db:"rock_deaths"`
	Starved       int     `db:"starved"`
	Reproductions int     `db:"reproductions"`
	Moves         int     `db:"moves"`
	MeanEnergy    float64 `db:"mean_energy"`
}

// Open opens or creates the ledger at path and starts a new run row.
func Open(path string, seed int64) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}
	if err := db.beginRun(seed); err != nil {
		conn.Close()
		return nil, fmt.Errorf("begin run: %w", err)
	}
	return db, nil
}

// Close closes the ledger connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// RunID returns the identifier of the run this handle records into.
func (db *DB) RunID() int64 { return db.runID }

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		seed INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS days (
		run_id INTEGER NOT NULL,
		day INTEGER NOT NULL,
		alive INTEGER NOT NULL,
		spawned INTEGER NOT NULL,
		died INTEGER NOT NULL,
		eaten INTEGER NOT NULL,
		rock_deaths INTEGER NOT NULL,
		starved INTEGER NOT NULL,
		reproductions INTEGER NOT NULL,
		moves INTEGER NOT NULL,
		mean_energy REAL NOT NULL,
		PRIMARY KEY (run_id, day)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		day INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_days_run ON days(run_id);
	CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id, day);
	`
	_, err := db.conn.Exec(schema)
	return err
}

func (db *DB) beginRun(seed int64) error {
	res, err := db.conn.Exec(
		"INSERT INTO runs (started_at, seed) VALUES (?, ?)",
		time.Now().UTC().Format(time.RFC3339), seed)
	if err != nil {
		return err
	}
	db.runID, err = res.LastInsertId()
	return err
}

// RecordDay appends one day summary to the current run. Re-recording the
// same day replaces the earlier row.
func (db *DB) RecordDay(d DaySummary) error {
	_, err := db.conn.Exec(`
	INSERT OR REPLACE INTO days
		(run_id, day, alive, spawned, died, eaten, rock_deaths, starved, reproductions, moves, mean_energy)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		db.runID, d.Day, d.Alive, d.Spawned, d.Died, d.Eaten,
		d.RockDeaths, d.Starved, d.Reproductions, d.Moves, d.MeanEnergy)
	if err != nil {
		return fmt.Errorf("record day %d: %w", d.Day, err)
	}
	return nil
}

// RecordEvent appends a notable event, such as an extinction or a world
// reset, to the current run.
func (db *DB) RecordEvent(day int, category, description string) error {
	_, err := db.conn.Exec(
		"INSERT INTO events (run_id, day, description, category) VALUES (?, ?, ?, ?)",
		db.runID, day, description, category)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

// Days returns the recorded day summaries of the current run in day order.
// Used by tests and offline inspection, not by the simulation itself.
func (db *DB) Days() ([]DaySummary, error) {
	var out []DaySummary
	err := db.conn.Select(&out, `
	SELECT day, alive, spawned, died, eaten, rock_deaths, starved, reproductions, moves, mean_energy
	FROM days WHERE run_id = ? ORDER BY day`, db.runID)
	if err != nil {
		return nil, fmt.Errorf("load days: %w", err)
	}
	return out, nil
}
