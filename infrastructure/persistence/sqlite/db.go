package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id       TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    is_active     INTEGER NOT NULL DEFAULT 1,
    is_admin      INTEGER NOT NULL DEFAULT 0,
    created_at    TEXT NOT NULL,
    updated_at    TEXT
);

CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

CREATE TABLE IF NOT EXISTS request_log (
    log_id        TEXT PRIMARY KEY,
    user_id       TEXT,
    http_method   TEXT NOT NULL,
    path          TEXT NOT NULL,
    status_code   INTEGER NOT NULL DEFAULT 0,
    request_body  TEXT,
    response_body TEXT,
    start_date    TEXT NOT NULL,
    end_date      TEXT,
    duration_ms   INTEGER
);

CREATE INDEX IF NOT EXISTS idx_request_log_start ON request_log(start_date DESC);

CREATE TABLE IF NOT EXISTS trace_log (
    trace_id    INTEGER PRIMARY KEY AUTOINCREMENT,
    log_id      TEXT,
    timestamp   TEXT NOT NULL,
    level       TEXT NOT NULL,
    message     TEXT NOT NULL,
    stack_trace TEXT
);

CREATE INDEX IF NOT EXISTS idx_trace_log_log_id ON trace_log(log_id);
`

// OpenDB opens the database at path and ensures the schema exists.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return db, nil
}

// OpenMemoryDB opens a throwaway in-memory database, used by tests.
func OpenMemoryDB() (*sql.DB, error) {
	return OpenDB(":memory:")
}
