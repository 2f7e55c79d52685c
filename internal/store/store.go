// Package store provides the embedded single-file append-only fact log:
// an idempotently-applied SQLite schema, the session clock, and the raw
// Execute/Query/QueryRow primitives the fact and view layers build on.
//
// Every fact table (all but clock, which holds only session_id and
// current_t) carries a surrogate ascending id, session_id, t (the
// session-scoped monotonic tick from the clock), and a wall-clock string.
// Rows are insert-only; the store never updates or deletes a fact row
// during normal operation.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/anthropics/witness/internal/wserr"
)

// Store owns the connection to the fact log.
type Store struct {
	db   *sql.DB
	path string // empty for an in-memory store
}

// Open ensures path's parent directory exists, opens (or creates) the
// store with write-ahead logging enabled, applies the schema idempotently,
// and returns a handle owning the connection.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, wserr.Store("open: mkdir", err)
		}
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, wserr.Store("open: sql.Open", err)
	}

	s := &Store{db: db, path: path}
	if err := s.db.Ping(); err != nil {
		db.Close()
		return nil, wserr.Store("open: ping", err)
	}
	if err := s.applySchema(); err != nil {
		db.Close()
		return nil, wserr.Store("open: schema", err)
	}
	return s, nil
}

// OpenInMemory returns a Store backed by an in-process SQLite database with
// the same idempotent schema applied. Useful for tests and for callers that
// never need the file to persist across processes.
func OpenInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, wserr.Store("open_in_memory: sql.Open", err)
	}
	// An in-memory database lives only as long as its one connection; pin
	// the pool to a single connection so the schema and all subsequent
	// queries see the same database instead of each getting a fresh one.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.db.Ping(); err != nil {
		db.Close()
		return nil, wserr.Store("open_in_memory: ping", err)
	}
	if err := s.applySchema(); err != nil {
		db.Close()
		return nil, wserr.Store("open_in_memory: schema", err)
	}
	return s, nil
}

// Path returns the backing file path, or "" for an in-memory store.
func (s *Store) Path() string { return s.path }

// Close checkpoints the write-ahead log and closes the connection.
func (s *Store) Close() error {
	_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return s.db.Close()
}

// Execute runs a parameterized statement, propagating store errors.
func (s *Store) Execute(stmt string, args ...any) (sql.Result, error) {
	res, err := s.db.Exec(stmt, args...)
	if err != nil {
		return nil, wserr.Store("execute", err)
	}
	return res, nil
}

// Query runs a parameterized query and returns the resulting rows.
func (s *Store) Query(stmt string, args ...any) (*sql.Rows, error) {
	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, wserr.Store("query", err)
	}
	return rows, nil
}

// QueryRow runs a parameterized query expected to return at most one row.
func (s *Store) QueryRow(stmt string, args ...any) *sql.Row {
	return s.db.QueryRow(stmt, args...)
}

const schema = `
CREATE TABLE IF NOT EXISTS clock (
	session_id TEXT PRIMARY KEY,
	current_t  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tool_calls (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	t           INTEGER NOT NULL,
	tool_name   TEXT NOT NULL,
	tool_input  TEXT NOT NULL DEFAULT '',
	tool_output TEXT,
	wall_clock  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tool_calls_session_t ON tool_calls(session_id, t);

CREATE TABLE IF NOT EXISTS hook_events (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id     TEXT NOT NULL,
	t              INTEGER NOT NULL,
	event          TEXT NOT NULL CHECK (event IN ('lint','record')),
	tool_name      TEXT,
	action         TEXT NOT NULL,
	message        TEXT,
	payload        TEXT,
	result         TEXT,
	correlation_id TEXT NOT NULL,
	wall_clock     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_hook_events_session_t ON hook_events(session_id, t);

CREATE TABLE IF NOT EXISTS file_events (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	t          INTEGER NOT NULL,
	event      TEXT NOT NULL CHECK (event IN ('read','edit','create','delete')),
	file_path  TEXT NOT NULL,
	wall_clock TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_file_events_session_t ON file_events(session_id, t);
CREATE INDEX IF NOT EXISTS idx_file_events_session_path ON file_events(session_id, file_path);

CREATE TABLE IF NOT EXISTS test_results (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	t          INTEGER NOT NULL,
	test_name  TEXT NOT NULL,
	outcome    TEXT NOT NULL CHECK (outcome IN ('pass','fail','skip','error')),
	message    TEXT,
	wall_clock TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_test_results_session_t ON test_results(session_id, t);
CREATE INDEX IF NOT EXISTS idx_test_results_session_name ON test_results(session_id, test_name);

CREATE TABLE IF NOT EXISTS lint_results (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	t          INTEGER NOT NULL,
	file_path  TEXT NOT NULL,
	line       INTEGER,
	rule       TEXT NOT NULL,
	severity   TEXT NOT NULL CHECK (severity IN ('error','warning','info')),
	wall_clock TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lint_results_session_t ON lint_results(session_id, t);
CREATE INDEX IF NOT EXISTS idx_lint_results_session_path ON lint_results(session_id, file_path);

CREATE TABLE IF NOT EXISTS type_errors (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	t          INTEGER NOT NULL,
	file_path  TEXT NOT NULL,
	line       INTEGER,
	message    TEXT NOT NULL,
	wall_clock TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_type_errors_session_t ON type_errors(session_id, t);
CREATE INDEX IF NOT EXISTS idx_type_errors_session_path ON type_errors(session_id, file_path);

CREATE TABLE IF NOT EXISTS imports (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id      TEXT NOT NULL,
	t               INTEGER NOT NULL,
	source_file     TEXT NOT NULL,
	imported_module TEXT NOT NULL,
	wall_clock      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_imports_session_t ON imports(session_id, t);
CREATE INDEX IF NOT EXISTS idx_imports_session_source ON imports(session_id, source_file);
`

// applySchema creates all tables and indexes if they don't already exist.
// Views are computed in internal/view, not stored here. Safe to call on
// every open.
func (s *Store) applySchema() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
