package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/runger/recall/internal/cmdutil"
	"github.com/runger/recall/internal/history"
)

// Add stores a single record.
// It automatically normalizes the command if not already set.
func (s *SQLiteStore) Add(ctx context.Context, r *Record) error {
	if r == nil {
		return errors.New("record cannot be nil")
	}
	if r.RecordID == "" {
		return errors.New("record_id is required")
	}
	if r.Command == "" {
		return errors.New("command is required")
	}

	if r.CommandNorm == "" {
		r.CommandNorm = cmdutil.NormalizeCommand(r.Command)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO records (
			record_id, command, command_norm, hostname, session_id,
			cwd, started_at_unix_ms, duration_ms, exit_code
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.RecordID,
		r.Command,
		r.CommandNorm,
		r.Hostname,
		r.SessionID,
		r.CWD,
		r.StartedAtUnixMs,
		r.DurationMs,
		r.ExitCode,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("record with id %s already exists", r.RecordID)
		}
		return fmt.Errorf("failed to add record: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		r.ID = id
	}

	return nil
}

// List returns the most recent records under the given filter, newest first.
// Records with identical normalized commands are collapsed to the most
// recent occurrence. The limit is capped at MaxQueryLimit.
func (s *SQLiteStore) List(ctx context.Context, filter FilterMode, qctx history.Context, limit int) ([]Record, error) {
	query := selectColumns + `
		FROM records
		WHERE 1=1
	`
	args := make([]interface{}, 0)
	query, args = applyFilter(query, args, filter, qctx)

	query += dedupTail
	args = append(args, capLimit(limit))

	return s.queryRecords(ctx, query, args)
}

// Search returns records matching the query text under the given search and
// filter modes, newest first with duplicates collapsed.
func (s *SQLiteStore) Search(ctx context.Context, mode SearchMode, filter FilterMode, qctx history.Context, queryText string, limit int) ([]Record, error) {
	query := selectColumns + `
		FROM records
		WHERE command LIKE ? ESCAPE '\'
	`
	args := []interface{}{likePattern(mode, queryText)}
	query, args = applyFilter(query, args, filter, qctx)

	query += dedupTail
	args = append(args, capLimit(limit))

	return s.queryRecords(ctx, query, args)
}

// Count returns the total number of stored records, unfiltered.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// TopCommands returns the most frequently run normalized commands.
func (s *SQLiteStore) TopCommands(ctx context.Context, limit int) ([]CommandCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT command_norm, COUNT(*) AS cnt
		FROM records
		GROUP BY command_norm
		ORDER BY cnt DESC, command_norm ASC
		LIMIT ?
	`, capLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query top commands: %w", err)
	}
	defer rows.Close()

	var counts []CommandCount
	for rows.Next() {
		var c CommandCount
		if err := rows.Scan(&c.Command, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan command count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// selectColumns pairs with dedupTail: the MAX() aggregate makes SQLite's
// bare columns come from the newest row in each command_norm group.
const selectColumns = `
	SELECT id, record_id, command, command_norm, hostname, session_id,
	       cwd, MAX(started_at_unix_ms) AS started_at_unix_ms, duration_ms, exit_code
`

const dedupTail = `
	GROUP BY command_norm
	ORDER BY started_at_unix_ms DESC
	LIMIT ?
`

// applyFilter appends the WHERE clause scoping a query to the filter mode.
func applyFilter(query string, args []interface{}, filter FilterMode, qctx history.Context) (string, []interface{}) {
	switch filter {
	case FilterHost:
		query += " AND hostname = ?"
		args = append(args, qctx.Hostname)
	case FilterSession:
		query += " AND session_id = ?"
		args = append(args, qctx.SessionID)
	case FilterDirectory:
		query += " AND cwd = ?"
		args = append(args, qctx.CWD)
	}
	return query, args
}

// likePattern builds the LIKE pattern for a search mode.
// Prefix anchors at the start, fulltext matches anywhere, and fuzzy
// interleaves wildcards between the query's characters.
func likePattern(mode SearchMode, queryText string) string {
	escaped := likeEscape(queryText)
	switch mode {
	case SearchPrefix:
		return escaped + "%"
	case SearchFulltext:
		return "%" + escaped + "%"
	case SearchFuzzy:
		var b strings.Builder
		b.WriteString("%")
		for _, r := range queryText {
			b.WriteString(likeEscape(string(r)))
			b.WriteString("%")
		}
		return b.String()
	default:
		return escaped + "%"
	}
}

// likeEscape escapes LIKE metacharacters so query text matches literally.
func likeEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// capLimit clamps a query limit to (0, MaxQueryLimit].
func capLimit(limit int) int {
	if limit <= 0 || limit > MaxQueryLimit {
		return MaxQueryLimit
	}
	return limit
}

func (s *SQLiteStore) queryRecords(ctx context.Context, query string, args []interface{}) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(
			&r.ID,
			&r.RecordID,
			&r.Command,
			&r.CommandNorm,
			&r.Hostname,
			&r.SessionID,
			&r.CWD,
			&r.StartedAtUnixMs,
			&r.DurationMs,
			&r.ExitCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// isDuplicateKeyError checks if the error indicates a UNIQUE violation.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
