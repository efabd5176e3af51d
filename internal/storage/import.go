package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/runger/recall/internal/cmdutil"
	"github.com/runger/recall/internal/history"
)

// ImportSessionID returns the session ID used for imported history.
// Format: "imported-<shell>" (e.g., "imported-bash", "imported-zsh").
func ImportSessionID(shell string) string {
	return "imported-" + shell
}

// HasImported checks if history has already been imported for the given shell.
func (s *SQLiteStore) HasImported(ctx context.Context, shell string) (bool, error) {
	sessionID := ImportSessionID(shell)
	row := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM records WHERE session_id = ? LIMIT 1
	`, sessionID)

	var exists int
	err := row.Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check imported history: %w", err)
	}
	return true, nil
}

// ImportHistory imports shell history entries into the database.
// It replaces any previously imported entries for the same shell.
// Returns the number of entries imported.
func (s *SQLiteStore) ImportHistory(ctx context.Context, entries []history.ImportEntry, shell string) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	sessionID := ImportSessionID(shell)
	now := time.Now().UnixMilli()
	hostname, _ := os.Hostname()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE session_id = ?`, sessionID); err != nil {
		return 0, fmt.Errorf("failed to delete old imports: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (
			record_id, command, command_norm, hostname, session_id,
			cwd, started_at_unix_ms, duration_ms, exit_code
		) VALUES (?, ?, ?, ?, ?, ?, ?, NULL, NULL)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	imported := 0
	for _, entry := range entries {
		if entry.Command == "" {
			continue
		}

		// Entries without timestamps keep their file order by spacing
		// them a millisecond apart.
		tsStart := now + int64(imported)
		if !entry.Timestamp.IsZero() {
			tsStart = entry.Timestamp.UnixMilli()
		}

		_, err := stmt.ExecContext(ctx,
			uuid.New().String(),
			entry.Command,
			cmdutil.NormalizeCommand(entry.Command),
			hostname,
			sessionID,
			"/", // CWD unknown for imported commands
			tsStart,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				continue
			}
			return 0, fmt.Errorf("failed to insert record: %w", err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return imported, nil
}
