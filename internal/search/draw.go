package search

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// inputPrompt prefixes the query line; the text caret is positioned after
// it plus the cursor offset.
const inputPrompt = "> "

var (
	styleDefault  = tcell.StyleDefault
	styleHeader   = tcell.StyleDefault.Bold(true)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleIndex    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleNotice   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// draw renders the whole screen from the view projection and the computed
// layout, then positions the text caret on the input line.
func draw(s tcell.Screen, v View, l *layout, version string) {
	s.Clear()

	drawHeader(s, v, l, version)
	drawList(s, v, l)
	drawInput(s, v, l)
	if l.previewHeight > 0 {
		drawPreview(s, v, l)
	}

	s.ShowCursor(runewidth.StringWidth(inputPrompt)+cursorCol(v), l.inputY)
}

// cursorCol is the display column of the caret within the query text.
func cursorCol(v View) int {
	runes := []rune(v.Query)
	if v.CursorPos > len(runes) {
		return runewidth.StringWidth(v.Query)
	}
	return runewidth.StringWidth(string(runes[:v.CursorPos]))
}

func drawHeader(s tcell.Screen, v View, l *layout, version string) {
	left := fmt.Sprintf("recall %s", version)
	writeText(s, 0, l.headerY, styleHeader, left)

	mid := fmt.Sprintf("[%s]", v.FilterMode)
	writeText(s, runewidth.StringWidth(left)+2, l.headerY, styleDim, mid)

	right := fmt.Sprintf("history count: %d", v.TotalCount)
	if v.UpdateNotice != "" {
		notice := fmt.Sprintf("update available: %s", v.UpdateNotice)
		writeText(s, l.width-runewidth.StringWidth(right)-runewidth.StringWidth(notice)-2, l.headerY, styleNotice, notice)
	}
	writeText(s, l.width-runewidth.StringWidth(right), l.headerY, styleDim, right)
}

// drawList renders the result list with the newest entry (index 0) on the
// bottom row, growing upward.
func drawList(s tcell.Screen, v View, l *layout) {
	// Keep the selection on screen.
	first := 0
	if v.Selected >= l.listH {
		first = v.Selected - l.listH + 1
	}

	for row := 0; row < l.listH; row++ {
		i := first + row
		if i >= len(v.Results) {
			break
		}
		y := l.listY + l.listH - 1 - row

		marker := "  "
		lineStyle := styleDefault
		if i == v.Selected {
			marker = "* "
			lineStyle = styleSelected
		}

		// Alt+1..9 jump labels, relative to the selection.
		label := "   "
		if off := i - v.Selected; off >= 1 && off <= 9 {
			label = fmt.Sprintf("%d: ", off)
		}

		text := truncate(v.Results[i].Command, l.width-len(marker)-len(label))
		writeText(s, 0, y, styleIndex, label)
		writeText(s, len(label), y, lineStyle, padRight(marker+text, l.width-len(label)))
	}
}

func drawInput(s tcell.Screen, v View, l *layout) {
	writeText(s, 0, l.inputY, styleHeader, inputPrompt)
	writeText(s, runewidth.StringWidth(inputPrompt), l.inputY, styleDefault,
		truncate(v.Query, l.width-runewidth.StringWidth(inputPrompt)))
}

// drawPreview wraps the selected command across the preview pane, bordered
// in the full layout.
func drawPreview(s tcell.Screen, v View, l *layout) {
	var command string
	if v.Selected < len(v.Results) {
		command = v.Results[v.Selected].Command
	}

	innerY := l.previewY
	innerH := l.previewHeight
	innerW := l.width
	if !l.compact {
		drawBorder(s, 0, l.previewY, l.width, l.previewHeight)
		innerY++
		innerH -= 2
		innerW -= 2
	}

	for line := 0; line < innerH; line++ {
		chunk := sliceWidth(command, line*innerW, innerW)
		if chunk == "" {
			break
		}
		x := 0
		if !l.compact {
			x = 1
		}
		writeText(s, x, innerY+line, styleDefault, chunk)
	}
}

func drawBorder(s tcell.Screen, x, y, w, h int) {
	if w < 2 || h < 2 {
		return
	}
	for cx := x + 1; cx < x+w-1; cx++ {
		s.SetContent(cx, y, tcell.RuneHLine, nil, styleBorder)
		s.SetContent(cx, y+h-1, tcell.RuneHLine, nil, styleBorder)
	}
	for cy := y + 1; cy < y+h-1; cy++ {
		s.SetContent(x, cy, tcell.RuneVLine, nil, styleBorder)
		s.SetContent(x+w-1, cy, tcell.RuneVLine, nil, styleBorder)
	}
	s.SetContent(x, y, tcell.RuneULCorner, nil, styleBorder)
	s.SetContent(x+w-1, y, tcell.RuneURCorner, nil, styleBorder)
	s.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, styleBorder)
	s.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, styleBorder)
}

// writeText draws a string at (x, y), advancing by display width so wide
// runes occupy two cells.
func writeText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		s.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}

// truncate shortens text to the given display width, ending in an ellipsis
// when anything was cut.
func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}

// padRight pads text with spaces to the given display width.
func padRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}

// sliceWidth returns the portion of text covering display columns
// [start, start+width).
func sliceWidth(text string, start, width int) string {
	if width <= 0 {
		return ""
	}
	skipped := 0
	var out []rune
	used := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if skipped < start {
			skipped += rw
			continue
		}
		if used+rw > width {
			break
		}
		out = append(out, r)
		used += rw
	}
	return string(out)
}
