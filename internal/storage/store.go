// Package storage provides SQLite-based persistent storage for recall's
// command history. It owns the record schema, filter-mode scoping, and the
// search modes the interactive session queries through.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/runger/recall/internal/history"
)

// MaxQueryLimit caps the number of records any single query returns.
const MaxQueryLimit = 200

// ErrInvalidFilterMode is returned when parsing an unknown filter mode name.
var ErrInvalidFilterMode = errors.New("invalid filter mode")

// ErrInvalidSearchMode is returned when parsing an unknown search mode name.
var ErrInvalidSearchMode = errors.New("invalid search mode")

// FilterMode restricts which records a query may return.
// The zero value is FilterGlobal.
type FilterMode int

const (
	FilterGlobal FilterMode = iota
	FilterHost
	FilterSession
	FilterDirectory
)

// filterCycle is the fixed order CycleFilterMode advances through.
var filterCycle = [4]FilterMode{FilterGlobal, FilterHost, FilterSession, FilterDirectory}

// Next returns the filter mode following m in the fixed cycle, wrapping.
func (m FilterMode) Next() FilterMode {
	for i, mode := range filterCycle {
		if mode == m {
			return filterCycle[(i+1)%len(filterCycle)]
		}
	}
	return FilterGlobal
}

func (m FilterMode) String() string {
	switch m {
	case FilterGlobal:
		return "global"
	case FilterHost:
		return "host"
	case FilterSession:
		return "session"
	case FilterDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// ParseFilterMode parses a filter mode name as used in configuration.
func ParseFilterMode(s string) (FilterMode, error) {
	switch s {
	case "global":
		return FilterGlobal, nil
	case "host":
		return FilterHost, nil
	case "session":
		return FilterSession, nil
	case "directory":
		return FilterDirectory, nil
	default:
		return FilterGlobal, fmt.Errorf("%w: %q", ErrInvalidFilterMode, s)
	}
}

// SearchMode selects how query text is matched against commands.
type SearchMode int

const (
	SearchPrefix SearchMode = iota
	SearchFulltext
	SearchFuzzy
)

func (m SearchMode) String() string {
	switch m {
	case SearchPrefix:
		return "prefix"
	case SearchFulltext:
		return "fulltext"
	case SearchFuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// ParseSearchMode parses a search mode name as used in configuration.
func ParseSearchMode(s string) (SearchMode, error) {
	switch s {
	case "prefix":
		return SearchPrefix, nil
	case "fulltext":
		return SearchFulltext, nil
	case "fuzzy":
		return SearchFuzzy, nil
	default:
		return SearchPrefix, fmt.Errorf("%w: %q", ErrInvalidSearchMode, s)
	}
}

// Record is a single stored shell command.
type Record struct {
	ID              int64
	RecordID        string
	Command         string
	CommandNorm     string
	Hostname        string
	SessionID       string
	CWD             string
	ExitCode        *int
	StartedAtUnixMs int64
	DurationMs      *int64
}

// Store defines the interface the rest of recall queries history through.
type Store interface {
	// Records
	Add(ctx context.Context, r *Record) error
	List(ctx context.Context, filter FilterMode, qctx history.Context, limit int) ([]Record, error)
	Search(ctx context.Context, mode SearchMode, filter FilterMode, qctx history.Context, query string, limit int) ([]Record, error)
	Count(ctx context.Context) (int64, error)

	// History import
	HasImported(ctx context.Context, shell string) (bool, error)
	ImportHistory(ctx context.Context, entries []history.ImportEntry, shell string) (int, error)

	// Stats
	TopCommands(ctx context.Context, limit int) ([]CommandCount, error)

	// Lifecycle
	Close() error
}

// CommandCount is a normalized command with its occurrence count.
type CommandCount struct {
	Command string
	Count   int64
}
