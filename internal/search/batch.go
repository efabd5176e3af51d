package search

import (
	"context"

	"github.com/runger/recall/internal/storage"
)

// Batch groups one redraw cycle's events into a single refresh decision.
// It snapshots the query text and filter mode at creation; Commit refreshes
// the result list iff either changed, so a run of edits costs at most one
// query per cycle.
//
// The batch exclusively owns the session between StartBatch and Commit.
type Batch struct {
	session       *Session
	initialQuery  string
	initialFilter storage.FilterMode
}

// StartBatch opens a batch over the session for one redraw cycle.
func StartBatch(s *Session) *Batch {
	return &Batch{
		session:       s,
		initialQuery:  s.input.Text(),
		initialFilter: s.filterMode,
	}
}

// Apply forwards one event to the session. Once a terminal result is
// produced the caller must stop applying events and exit the loop.
func (b *Batch) Apply(ev Event) (result string, done bool) {
	return b.session.Apply(ev)
}

// Commit ends the batch, refreshing the result list if the query text or
// filter mode changed since the batch opened. It reports whether a refresh
// happened so the caller can invalidate cached layout.
func (b *Batch) Commit(ctx context.Context) (refreshed bool, err error) {
	s := b.session
	if s.input.Text() == b.initialQuery && s.filterMode == b.initialFilter {
		return false, nil
	}
	if err := s.refreshQuery(ctx); err != nil {
		return false, err
	}
	return true, nil
}
