package search

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func key(k tcell.Key, ch rune, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, ch, mod)
}

func TestFromTerminal_KeyTable(t *testing.T) {
	tests := []struct {
		name string
		raw  tcell.Event
		want Event
	}{
		{"ctrl-c cancels", key(tcell.KeyCtrlC, 0, 0), Cancel{}},
		{"ctrl-d cancels", key(tcell.KeyCtrlD, 0, 0), Cancel{}},
		{"ctrl-g cancels", key(tcell.KeyCtrlG, 0, 0), Cancel{}},
		{"esc exits", key(tcell.KeyEsc, 0, 0), Exit{}},
		{"enter selects", key(tcell.KeyEnter, 0, 0), SelectN{N: 0}},
		{"alt-3 selects offset", key(tcell.KeyRune, '3', tcell.ModAlt), SelectN{N: 3}},
		{"ctrl-r cycles filter", key(tcell.KeyCtrlR, 0, 0), CycleFilterMode{}},
		{"ctrl-u clears", key(tcell.KeyCtrlU, 0, 0), Clear{}},
		{"ctrl-w deletes word", key(tcell.KeyCtrlW, 0, 0), Delete{Dir: Left, To: SpanWord}},
		{"backspace deletes char", key(tcell.KeyBackspace2, 0, 0), Delete{Dir: Left, To: SpanChar}},
		{"alt-backspace deletes word", key(tcell.KeyBackspace2, 0, tcell.ModAlt), Delete{Dir: Left, To: SpanWord}},
		{"delete forward", key(tcell.KeyDelete, 0, 0), Delete{Dir: Right, To: SpanChar}},
		{"ctrl-a to start", key(tcell.KeyCtrlA, 0, 0), CursorMove{Dir: Left, To: SpanEdge}},
		{"home to start", key(tcell.KeyHome, 0, 0), CursorMove{Dir: Left, To: SpanEdge}},
		{"ctrl-e to end", key(tcell.KeyCtrlE, 0, 0), CursorMove{Dir: Right, To: SpanEdge}},
		{"left char", key(tcell.KeyLeft, 0, 0), CursorMove{Dir: Left, To: SpanChar}},
		{"ctrl-left word", key(tcell.KeyLeft, 0, tcell.ModCtrl), CursorMove{Dir: Left, To: SpanWord}},
		{"right char", key(tcell.KeyRight, 0, 0), CursorMove{Dir: Right, To: SpanChar}},
		{"up selects up", key(tcell.KeyUp, 0, 0), Selection{Dir: Up, By: SpanLine}},
		{"ctrl-p selects up", key(tcell.KeyCtrlP, 0, 0), Selection{Dir: Up, By: SpanLine}},
		{"down selects down", key(tcell.KeyDown, 0, 0), Selection{Dir: Down, By: SpanLine}},
		{"ctrl-n selects down", key(tcell.KeyCtrlN, 0, 0), Selection{Dir: Down, By: SpanLine}},
		{"page up", key(tcell.KeyPgUp, 0, 0), Selection{Dir: Up, By: SpanPage}},
		{"page down", key(tcell.KeyPgDn, 0, 0), Selection{Dir: Down, By: SpanPage}},
		{"plain rune inputs", key(tcell.KeyRune, 'g', 0), Input{Ch: 'g'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fromTerminal(tt.raw)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromTerminal_UnmappedDropped(t *testing.T) {
	unmapped := []tcell.Event{
		key(tcell.KeyF1, 0, 0),
		key(tcell.KeyTab, 0, 0),
		key(tcell.KeyRune, 'z', tcell.ModAlt),
		tcell.NewEventResize(80, 24),
	}
	for _, raw := range unmapped {
		_, ok := fromTerminal(raw)
		assert.False(t, ok, "%T should produce no event", raw)
	}
}

func TestFromTerminal_MouseWheel(t *testing.T) {
	up := tcell.NewEventMouse(0, 0, tcell.WheelUp, 0)
	got, ok := fromTerminal(up)
	assert.True(t, ok)
	assert.Equal(t, Selection{Dir: Up, By: SpanLine}, got)

	click := tcell.NewEventMouse(0, 0, tcell.Button1, 0)
	_, ok = fromTerminal(click)
	assert.False(t, ok)
}
