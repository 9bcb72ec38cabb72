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
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
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

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS reports (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		date        TEXT NOT NULL,
		content     TEXT NOT NULL DEFAULT '',
		checklist   TEXT NOT NULL DEFAULT '[]',
		good_items  TEXT NOT NULL DEFAULT '[]',
		bad_items   TEXT NOT NULL DEFAULT '[]',
		good_count  INTEGER NOT NULL DEFAULT 0,
		bad_count   INTEGER NOT NULL DEFAULT 0,
		published   INTEGER NOT NULL DEFAULT 0,
		draft       INTEGER NOT NULL DEFAULT 1,
		voice_notes TEXT NOT NULL DEFAULT '[]',
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_reports_date ON reports(date);

	CREATE TABLE IF NOT EXISTS plan_items (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		report_id  INTEGER REFERENCES reports(id),
		text       TEXT NOT NULL,
		date       TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS tags (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		kind TEXT NOT NULL CHECK (kind IN ('good','bad')),
		UNIQUE(text, kind)
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('pool_start',     '360'),
		('pool_end',       '1080'),
		('notify_enabled', '0'),
		('notify_mode',    '0'),
		('telegram_token', ''),
		('telegram_chat',  ''),
		('sync_peers',     ''),
		('sync_broadcast', ''),
		('widget_theme',   '0'),
		('widget_opacity', '100');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/lazybones/lazybones.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "lazybones", "lazybones.db"), nil
}
