package search

import "github.com/mattn/go-runewidth"

// compactHeightCutoff is the terminal height below which StyleAuto renders
// the compact layout.
const compactHeightCutoff = 14

// maxPreviewLines caps how many wrapped lines of the selected command the
// preview pane shows, before borders.
const maxPreviewLines = 4

// layout is the computed screen geometry for one render. It is cached
// between iterations and recomputed only when the terminal size or the
// preview height changes, or after a result refresh.
type layout struct {
	width, height int
	compact       bool
	previewHeight int

	headerY int
	listY   int
	listH   int
	inputY  int
	// previewY is the first preview row; meaningless when previewHeight
	// is zero.
	previewY int
}

// matches reports whether the cached layout is still valid for the given
// geometry inputs.
func (l *layout) matches(width, height, previewHeight int, compact bool) bool {
	return l != nil &&
		l.width == width &&
		l.height == height &&
		l.previewHeight == previewHeight &&
		l.compact == compact
}

// resolveCompact determines the display mode from the configured style and
// the current terminal height.
func resolveCompact(style Style, height int) bool {
	switch style {
	case StyleCompact:
		return true
	case StyleFull:
		return false
	default:
		return height < compactHeightCutoff
	}
}

// previewHeight computes the preview pane's total height in rows from the
// longest visible command and the pane's inner width. Full style draws a
// border around the pane.
func previewHeight(v View, width int, compact bool, showPreview bool) int {
	if !showPreview || width <= 0 {
		return 0
	}
	longest := 0
	for _, r := range v.Results {
		if w := runewidth.StringWidth(r.Command); w > longest {
			longest = w
		}
	}
	if longest == 0 {
		longest = 1
	}
	lines := (longest + width - 1) / width
	if lines > maxPreviewLines {
		lines = maxPreviewLines
	}
	if compact {
		return 1
	}
	return lines + 2
}

// computeLayout lays the screen out top to bottom: header, result list,
// input line, preview pane.
func computeLayout(width, height, prevH int, compact bool) *layout {
	l := &layout{
		width:         width,
		height:        height,
		compact:       compact,
		previewHeight: prevH,
	}

	l.headerY = 0
	l.listY = 1
	l.inputY = height - 1 - prevH
	l.listH = l.inputY - l.listY
	if l.listH < 1 {
		l.listH = 1
	}
	l.previewY = height - prevH
	return l
}
