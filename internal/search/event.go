// Package search implements the interactive history search session: the
// event state machine, the per-cycle refresh transaction, and the terminal
// event loop that drives them.
package search

// Direction parameterizes movement and deletion events.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Span is the granularity of a movement, deletion, or selection event.
type Span int

const (
	SpanChar Span = iota
	SpanWord
	SpanEdge
	SpanLine
	SpanPage
)

// Event is one semantic action the session state machine understands.
// Raw terminal input maps to at most one Event; unrecognized input maps
// to none.
type Event interface {
	isEvent()
}

// Input inserts a single character into the query.
type Input struct {
	Ch rune
}

// Selection moves the selected result by a line or a page.
type Selection struct {
	Dir Direction // Up or Down
	By  Span      // SpanLine or SpanPage
}

// CursorMove moves the query caret by a char, word, or to the buffer edge.
type CursorMove struct {
	Dir Direction // Left or Right
	To  Span      // SpanChar, SpanWord, or SpanEdge
}

// Delete removes query text by a char, word, or to the buffer edge.
type Delete struct {
	Dir Direction
	To  Span
}

// Clear empties the query buffer.
type Clear struct{}

// Exit ends the session; the result depends on the configured exit mode.
type Exit struct{}

// Cancel ends the session with an empty result.
type Cancel struct{}

// SelectN resolves the session from the selection plus an offset.
type SelectN struct {
	N int
}

// CycleFilterMode advances the filter mode through its fixed cycle.
type CycleFilterMode struct{}

// UpdateNeeded records that a newer release is available.
type UpdateNeeded struct {
	Version string
}

func (Input) isEvent()           {}
func (Selection) isEvent()       {}
func (CursorMove) isEvent()      {}
func (Delete) isEvent()          {}
func (Clear) isEvent()           {}
func (Exit) isEvent()            {}
func (Cancel) isEvent()          {}
func (SelectN) isEvent()         {}
func (CycleFilterMode) isEvent() {}
func (UpdateNeeded) isEvent()    {}
