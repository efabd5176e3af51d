package search

import "strings"

// WordJumpMode selects the word-boundary style for word movement.
type WordJumpMode int

const (
	// JumpEmacs skips separators first, then the word, in both directions.
	JumpEmacs WordJumpMode = iota
	// JumpSubl moves right past the current word first, then trailing
	// separators, like Sublime Text. Leftward movement matches JumpEmacs.
	JumpSubl
)

// ParseWordJumpMode parses a word jump mode name as used in configuration.
func ParseWordJumpMode(s string) WordJumpMode {
	if s == "subl" {
		return JumpSubl
	}
	return JumpEmacs
}

// Cursor owns the editable query text and a caret position. The position
// is always within [0, len(buf)].
type Cursor struct {
	buf       []rune
	pos       int
	wordChars string
	jumpMode  WordJumpMode
}

// NewCursor returns a cursor seeded with text, caret at the end.
func NewCursor(text, wordChars string, jumpMode WordJumpMode) *Cursor {
	buf := []rune(text)
	return &Cursor{
		buf:       buf,
		pos:       len(buf),
		wordChars: wordChars,
		jumpMode:  jumpMode,
	}
}

// Text returns the current buffer contents.
func (c *Cursor) Text() string {
	return string(c.buf)
}

// Pos returns the caret position in runes from the buffer start.
func (c *Cursor) Pos() int {
	return c.pos
}

// Insert places r at the caret and advances past it.
func (c *Cursor) Insert(r rune) {
	c.buf = append(c.buf[:c.pos], append([]rune{r}, c.buf[c.pos:]...)...)
	c.pos++
}

// Clear empties the buffer.
func (c *Cursor) Clear() {
	c.buf = c.buf[:0]
	c.pos = 0
}

// Move shifts the caret by the given span. SpanLine and SpanPage are not
// cursor motions and are ignored.
func (c *Cursor) Move(dir Direction, to Span) {
	c.pos = c.target(dir, to)
}

// Remove deletes the text between the caret and its target under the given
// motion, leaving the caret at the left end of the removed range.
func (c *Cursor) Remove(dir Direction, to Span) {
	target := c.target(dir, to)
	lo, hi := c.pos, target
	if lo > hi {
		lo, hi = hi, lo
	}
	c.buf = append(c.buf[:lo], c.buf[hi:]...)
	c.pos = lo
}

// target computes where the caret would land for a motion, without moving.
func (c *Cursor) target(dir Direction, to Span) int {
	switch to {
	case SpanChar:
		if dir == Left {
			return max(0, c.pos-1)
		}
		return min(len(c.buf), c.pos+1)
	case SpanEdge:
		if dir == Left {
			return 0
		}
		return len(c.buf)
	case SpanWord:
		if dir == Left {
			return c.prevWord()
		}
		return c.nextWord()
	default:
		return c.pos
	}
}

// prevWord skips separators leftwards, then the word itself.
func (c *Cursor) prevWord() int {
	i := c.pos
	for i > 0 && !c.isWord(c.buf[i-1]) {
		i--
	}
	for i > 0 && c.isWord(c.buf[i-1]) {
		i--
	}
	return i
}

// nextWord lands after the next word (emacs) or after the current word's
// trailing separators (subl).
func (c *Cursor) nextWord() int {
	i := c.pos
	if c.jumpMode == JumpSubl {
		for i < len(c.buf) && c.isWord(c.buf[i]) {
			i++
		}
		for i < len(c.buf) && !c.isWord(c.buf[i]) {
			i++
		}
		return i
	}
	for i < len(c.buf) && !c.isWord(c.buf[i]) {
		i++
	}
	for i < len(c.buf) && c.isWord(c.buf[i]) {
		i++
	}
	return i
}

func (c *Cursor) isWord(r rune) bool {
	return strings.ContainsRune(c.wordChars, r)
}
