package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runger/recall/internal/storage"
)

func TestResolveCompact(t *testing.T) {
	assert.True(t, resolveCompact(StyleCompact, 50))
	assert.False(t, resolveCompact(StyleFull, 5))
	assert.True(t, resolveCompact(StyleAuto, compactHeightCutoff-1))
	assert.False(t, resolveCompact(StyleAuto, compactHeightCutoff))
}

func TestPreviewHeight(t *testing.T) {
	v := View{Results: []storage.Record{{Command: strings.Repeat("x", 100)}}}

	assert.Equal(t, 0, previewHeight(v, 80, false, false), "disabled preview")
	assert.Equal(t, 1, previewHeight(v, 80, true, true), "compact is one line")

	// 100 cols over width 80 wraps to 2 lines, plus borders.
	assert.Equal(t, 4, previewHeight(v, 80, false, true))

	// Long commands cap at maxPreviewLines plus borders.
	long := View{Results: []storage.Record{{Command: strings.Repeat("x", 1000)}}}
	assert.Equal(t, maxPreviewLines+2, previewHeight(long, 80, false, true))

	// Empty results still get a minimal pane.
	assert.Equal(t, 3, previewHeight(View{}, 80, false, true))
}

func TestComputeLayout(t *testing.T) {
	l := computeLayout(80, 24, 4, false)

	assert.Equal(t, 0, l.headerY)
	assert.Equal(t, 1, l.listY)
	assert.Equal(t, 19, l.inputY)
	assert.Equal(t, 18, l.listH)
	assert.Equal(t, 20, l.previewY)
}

func TestLayout_Matches(t *testing.T) {
	var nilLayout *layout
	assert.False(t, nilLayout.matches(80, 24, 4, false))

	l := computeLayout(80, 24, 4, false)
	assert.True(t, l.matches(80, 24, 4, false))
	assert.False(t, l.matches(80, 25, 4, false), "height change invalidates")
	assert.False(t, l.matches(80, 24, 3, false), "preview change invalidates")
	assert.False(t, l.matches(80, 24, 4, true), "style change invalidates")
}
