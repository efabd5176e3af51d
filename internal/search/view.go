package search

import "github.com/runger/recall/internal/storage"

// View is a read-only projection of session state for rendering. It owns
// no data; the slices alias the session's and must not be mutated.
type View struct {
	Query        string
	CursorPos    int
	Results      []storage.Record
	Selected     int
	FilterMode   storage.FilterMode
	TotalCount   int64
	UpdateNotice string
}

// View projects the session's current state.
func (s *Session) View() View {
	return View{
		Query:        s.input.Text(),
		CursorPos:    s.input.Pos(),
		Results:      s.results,
		Selected:     s.selected,
		FilterMode:   s.filterMode,
		TotalCount:   s.totalCount,
		UpdateNotice: s.updateNotice,
	}
}
