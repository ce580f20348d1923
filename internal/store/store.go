package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

// settingDefaults seeds the settings table and restores it on a full reset.
var settingDefaults = [][2]string{
	{SettingSound, "true"},
	{SettingVibration, "true"},
	{SettingReminder, "false"},
	{SettingReminderTime, "09:00"},
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS records (
		key         TEXT PRIMARY KEY,
		value       TEXT NOT NULL,
		updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS session_runs (
		id              TEXT PRIMARY KEY,
		session_id      TEXT NOT NULL,
		plan_id         TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'playing',
		elapsed_seconds INTEGER NOT NULL DEFAULT 0,
		minutes         INTEGER NOT NULL DEFAULT 0,
		started_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		ended_at        TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON session_runs(started_at);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	return seedSettings(s.db, false)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func seedSettings(db execer, overwrite bool) error {
	stmt := `INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`
	if overwrite {
		stmt = `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`
	}
	for _, kv := range settingDefaults {
		if _, err := db.Exec(stmt, kv[0], kv[1]); err != nil {
			return fmt.Errorf("seed setting %q: %w", kv[0], err)
		}
	}
	return nil
}
