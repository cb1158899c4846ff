// Package store persists comment templates and generated comment exports in
// SQLite.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	// :memory: databases are per connection.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS comment_exports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		template_id TEXT NOT NULL,
		template_name TEXT NOT NULL DEFAULT '',
		generated_at DATETIME NOT NULL,
		comment_count INTEGER NOT NULL DEFAULT 0,
		missing_count INTEGER NOT NULL DEFAULT 0,
		payload TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_comment_exports_generated
		ON comment_exports (generated_at);
	`
	_, err := s.db.Exec(schema)
	return err
}
