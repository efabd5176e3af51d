package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db        *sql.DB
	closeOnce sync.Once // ensures Close() is idempotent
	closeErr  error
}

// NewSQLiteStore opens (or creates) the history database at dbPath.
// The database is opened with WAL mode enabled for better concurrency.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pragmas in DSN
	// modernc.org/sqlite uses _pragma=name(value) syntax
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite handles concurrency better with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Ping to establish connection and ensure pragmas are applied
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
// It is safe to call Close multiple times.
func (s *SQLiteStore) Close() error {
	s.closeOnce.Do(func() {
		if s.db != nil {
			// Final checkpoint before closing to merge WAL into main db
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			s.closeErr = s.db.Close()
		}
	})
	return s.closeErr
}

// DB returns the underlying database connection for advanced use cases.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// migrate runs database migrations to ensure the schema is up to date.
func (s *SQLiteStore) migrate(ctx context.Context) error {
	currentVersion := 0
	row := s.db.QueryRowContext(ctx, `
		SELECT version FROM schema_meta ORDER BY version DESC LIMIT 1
	`)
	if err := row.Scan(&currentVersion); err != nil {
		if err == sql.ErrNoRows || isTableNotFoundError(err) {
			currentVersion = 0
		} else {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{
			version: 1,
			sql:     migrationV1,
		},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		if _, err := s.db.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("migration v%d failed: %w", m.version, err)
		}

		_, err := s.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO schema_meta (version, applied_at_unix_ms)
			VALUES (?, ?)
		`, m.version, time.Now().UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to record migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// isTableNotFoundError checks if the error indicates a missing table.
func isTableNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "no such table")
}

// migrationV1 creates the initial schema.
const migrationV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_meta (
  version INTEGER PRIMARY KEY,
  applied_at_unix_ms INTEGER NOT NULL
);

-- Shell history records
CREATE TABLE IF NOT EXISTS records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  record_id TEXT NOT NULL UNIQUE,

  -- The command
  command TEXT NOT NULL,
  command_norm TEXT NOT NULL,

  -- Context
  hostname TEXT NOT NULL,
  session_id TEXT NOT NULL,
  cwd TEXT NOT NULL,

  -- Timing and result
  started_at_unix_ms INTEGER NOT NULL,
  duration_ms INTEGER,
  exit_code INTEGER
);

CREATE INDEX IF NOT EXISTS idx_records_started ON records(started_at_unix_ms DESC);
CREATE INDEX IF NOT EXISTS idx_records_host ON records(hostname, started_at_unix_ms DESC);
CREATE INDEX IF NOT EXISTS idx_records_session ON records(session_id, started_at_unix_ms DESC);
CREATE INDEX IF NOT EXISTS idx_records_cwd ON records(cwd, started_at_unix_ms DESC);
CREATE INDEX IF NOT EXISTS idx_records_norm ON records(command_norm);
`
