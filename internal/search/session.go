package search

import (
	"context"

	"github.com/runger/recall/internal/config"
	"github.com/runger/recall/internal/history"
	"github.com/runger/recall/internal/storage"
)

// ExitMode selects what an Exit event resolves the session to.
type ExitMode int

const (
	// ExitReturnOriginal resolves to an empty string, leaving the shell's
	// original line untouched.
	ExitReturnOriginal ExitMode = iota
	// ExitReturnQuery resolves to the live query text.
	ExitReturnQuery
)

// Style selects the rendering layout.
type Style int

const (
	StyleAuto Style = iota
	StyleCompact
	StyleFull
)

// Settings is the configuration slice the session and loop consume,
// resolved from config strings at construction.
type Settings struct {
	SearchMode         storage.SearchMode
	ExitMode           ExitMode
	WordChars          string
	WordJumpMode       WordJumpMode
	ScrollContextLines int
	ShowPreview        bool
	Style              Style
}

// SettingsFromConfig resolves typed settings from the loaded configuration.
// Unknown names fall back to defaults rather than failing; Validate has
// already rejected them at load time.
func SettingsFromConfig(cfg *config.Config) Settings {
	searchMode, _ := storage.ParseSearchMode(cfg.Search.SearchMode)

	exitMode := ExitReturnOriginal
	if cfg.Search.ExitMode == "return-query" {
		exitMode = ExitReturnQuery
	}

	style := StyleAuto
	switch cfg.UI.Style {
	case "compact":
		style = StyleCompact
	case "full":
		style = StyleFull
	}

	wordChars := cfg.Search.WordChars
	if wordChars == "" {
		wordChars = config.DefaultWordChars
	}

	return Settings{
		SearchMode:         searchMode,
		ExitMode:           exitMode,
		WordChars:          wordChars,
		WordJumpMode:       ParseWordJumpMode(cfg.Search.WordJumpMode),
		ScrollContextLines: cfg.Search.ScrollContextLines,
		ShowPreview:        cfg.UI.ShowPreview,
		Style:              style,
	}
}

// Session is the mutable state of one interactive search: query text,
// filter mode, the current result list, and the selection into it. It is
// mutated exclusively through Apply, one event at a time.
type Session struct {
	store    storage.Store
	settings Settings
	qctx     history.Context

	input      *Cursor
	filterMode storage.FilterMode
	results    []storage.Record
	selected   int
	totalCount int64

	updateNotice string
	visibleRows  int
}

// NewSession creates a session seeded with an initial query and filter mode.
func NewSession(store storage.Store, settings Settings, qctx history.Context, initialQuery string, filter storage.FilterMode) *Session {
	return &Session{
		store:       store,
		settings:    settings,
		qctx:        qctx,
		input:       NewCursor(initialQuery, settings.WordChars, settings.WordJumpMode),
		filterMode:  filter,
		visibleRows: 1,
	}
}

// SetVisibleRows records how many result rows the current layout shows,
// which sizes page movement.
func (s *Session) SetVisibleRows(rows int) {
	if rows < 1 {
		rows = 1
	}
	s.visibleRows = rows
}

// pageSize is one page of selection movement, keeping a configured number
// of overlap lines for context.
func (s *Session) pageSize() int {
	return max(1, s.visibleRows-s.settings.ScrollContextLines)
}

// Apply interprets one event against the session. It returns done=true with
// the terminal result string when the event ends the session; otherwise the
// session stays open for further events.
func (s *Session) Apply(ev Event) (result string, done bool) {
	switch ev := ev.(type) {
	case Input:
		s.input.Insert(ev.Ch)
	case CursorMove:
		s.input.Move(ev.Dir, ev.To)
	case Delete:
		s.input.Remove(ev.Dir, ev.To)
	case Clear:
		s.input.Clear()
	case Selection:
		return s.applySelection(ev)
	case SelectN:
		return s.applySelectN(ev.N)
	case CycleFilterMode:
		s.filterMode = s.filterMode.Next()
	case UpdateNeeded:
		s.updateNotice = ev.Version
	case Cancel:
		return "", true
	case Exit:
		if s.settings.ExitMode == ExitReturnQuery {
			return s.input.Text(), true
		}
		return "", true
	}
	return "", false
}

func (s *Session) applySelection(ev Selection) (string, bool) {
	step := 1
	if ev.By == SpanPage {
		step = s.pageSize()
	}
	switch ev.Dir {
	case Up:
		if len(s.results) > 0 {
			s.selected = min(s.selected+step, len(s.results)-1)
		}
	case Down:
		// Moving down past the newest entry leaves the search entirely.
		if ev.By == SpanLine && s.selected == 0 {
			return "", true
		}
		s.selected = max(0, s.selected-step)
	}
	return "", false
}

// pickOutcome is the boundary decision SelectN resolves through: either
// a stored record or the typed query text.
type pickOutcome struct {
	useQueryText bool
	recordIndex  int
}

// pickSelection decides what SelectN resolves to: an in-range index yields
// that record, out of range (including an empty list) falls back to the
// query text.
func pickSelection(selected, offset, length int) pickOutcome {
	i := selected + offset
	if i < length {
		return pickOutcome{recordIndex: i}
	}
	return pickOutcome{useQueryText: true}
}

func (s *Session) applySelectN(n int) (string, bool) {
	outcome := pickSelection(s.selected, n, len(s.results))
	if outcome.useQueryText {
		return s.input.Text(), true
	}
	// Swap-removal; list order no longer matters once the session ends.
	i := outcome.recordIndex
	last := len(s.results) - 1
	s.results[i], s.results[last] = s.results[last], s.results[i]
	chosen := s.results[last]
	s.results = s.results[:last]
	return chosen.Command, true
}

// refreshQuery re-issues the list or search query against the store and
// resets the selection to the newest result. The result list never exceeds
// the store's query cap.
func (s *Session) refreshQuery(ctx context.Context) error {
	var (
		records []storage.Record
		err     error
	)
	if text := s.input.Text(); text == "" {
		records, err = s.store.List(ctx, s.filterMode, s.qctx, storage.MaxQueryLimit)
	} else {
		records, err = s.store.Search(ctx, s.settings.SearchMode, s.filterMode, s.qctx, text, storage.MaxQueryLimit)
	}
	if err != nil {
		return err
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		return err
	}

	s.results = records
	s.selected = 0
	s.totalCount = total
	return nil
}
