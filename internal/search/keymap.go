package search

import "github.com/gdamore/tcell/v2"

// fromTerminal converts one raw terminal event into at most one semantic
// Event. The mapping is a fixed table; anything unrecognized (resize,
// focus, paste, unmapped chords) produces no event.
func fromTerminal(raw tcell.Event) (Event, bool) {
	switch ev := raw.(type) {
	case *tcell.EventKey:
		return fromKey(ev)
	case *tcell.EventMouse:
		return fromMouse(ev)
	default:
		return nil, false
	}
}

func fromKey(ev *tcell.EventKey) (Event, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlD, tcell.KeyCtrlG:
		return Cancel{}, true
	case tcell.KeyEsc:
		return Exit{}, true
	case tcell.KeyEnter:
		return SelectN{N: 0}, true

	case tcell.KeyCtrlR:
		return CycleFilterMode{}, true
	case tcell.KeyCtrlU:
		return Clear{}, true

	case tcell.KeyCtrlW:
		return Delete{Dir: Left, To: SpanWord}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return Delete{Dir: Left, To: SpanWord}, true
		}
		return Delete{Dir: Left, To: SpanChar}, true
	case tcell.KeyDelete:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return Delete{Dir: Right, To: SpanWord}, true
		}
		return Delete{Dir: Right, To: SpanChar}, true

	case tcell.KeyCtrlA, tcell.KeyHome:
		return CursorMove{Dir: Left, To: SpanEdge}, true
	case tcell.KeyCtrlE, tcell.KeyEnd:
		return CursorMove{Dir: Right, To: SpanEdge}, true
	case tcell.KeyLeft:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return CursorMove{Dir: Left, To: SpanWord}, true
		}
		return CursorMove{Dir: Left, To: SpanChar}, true
	case tcell.KeyRight:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return CursorMove{Dir: Right, To: SpanWord}, true
		}
		return CursorMove{Dir: Right, To: SpanChar}, true

	case tcell.KeyUp, tcell.KeyCtrlP, tcell.KeyCtrlK:
		return Selection{Dir: Up, By: SpanLine}, true
	case tcell.KeyDown, tcell.KeyCtrlN, tcell.KeyCtrlJ:
		return Selection{Dir: Down, By: SpanLine}, true
	case tcell.KeyPgUp:
		return Selection{Dir: Up, By: SpanPage}, true
	case tcell.KeyPgDn:
		return Selection{Dir: Down, By: SpanPage}, true

	case tcell.KeyRune:
		ch := ev.Rune()
		if ev.Modifiers()&tcell.ModAlt != 0 {
			if ch >= '1' && ch <= '9' {
				return SelectN{N: int(ch - '0')}, true
			}
			return nil, false
		}
		return Input{Ch: ch}, true
	}
	return nil, false
}

func fromMouse(ev *tcell.EventMouse) (Event, bool) {
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		return Selection{Dir: Up, By: SpanLine}, true
	case ev.Buttons()&tcell.WheelDown != 0:
		return Selection{Dir: Down, By: SpanLine}, true
	}
	return nil, false
}
