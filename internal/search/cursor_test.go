package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runger/recall/internal/config"
)

func emacsCursor(text string) *Cursor {
	return NewCursor(text, config.DefaultWordChars, JumpEmacs)
}

func TestCursor_NewSeedsAtEnd(t *testing.T) {
	c := emacsCursor("git status")
	assert.Equal(t, "git status", c.Text())
	assert.Equal(t, 10, c.Pos())
}

func TestCursor_Insert(t *testing.T) {
	c := emacsCursor("gt")
	c.Move(Left, SpanChar)
	c.Insert('i')
	assert.Equal(t, "git", c.Text())
	assert.Equal(t, 2, c.Pos())
}

func TestCursor_MoveChar_Bounds(t *testing.T) {
	c := emacsCursor("ab")

	c.Move(Right, SpanChar)
	assert.Equal(t, 2, c.Pos(), "cannot move past end")

	c.Move(Left, SpanChar)
	c.Move(Left, SpanChar)
	c.Move(Left, SpanChar)
	assert.Equal(t, 0, c.Pos(), "cannot move before start")
}

func TestCursor_MoveEdge(t *testing.T) {
	c := emacsCursor("git status")

	c.Move(Left, SpanEdge)
	assert.Equal(t, 0, c.Pos())

	c.Move(Right, SpanEdge)
	assert.Equal(t, 10, c.Pos())
}

func TestCursor_MoveWord_Emacs(t *testing.T) {
	c := emacsCursor("git   status  now")

	c.Move(Left, SpanWord)
	assert.Equal(t, 14, c.Pos(), "left lands at word start")
	c.Move(Left, SpanWord)
	assert.Equal(t, 6, c.Pos())
	c.Move(Left, SpanWord)
	assert.Equal(t, 0, c.Pos())

	c.Move(Right, SpanWord)
	assert.Equal(t, 3, c.Pos(), "right lands after word")
	c.Move(Right, SpanWord)
	assert.Equal(t, 12, c.Pos())
}

func TestCursor_MoveWord_Subl(t *testing.T) {
	c := NewCursor("git   status", config.DefaultWordChars, JumpSubl)
	c.Move(Left, SpanEdge)

	c.Move(Right, SpanWord)
	assert.Equal(t, 6, c.Pos(), "right lands at next word start")
}

func TestCursor_RemoveChar(t *testing.T) {
	c := emacsCursor("git")
	c.Remove(Left, SpanChar)
	assert.Equal(t, "gi", c.Text())
	assert.Equal(t, 2, c.Pos())

	c.Move(Left, SpanEdge)
	c.Remove(Right, SpanChar)
	assert.Equal(t, "i", c.Text())
	assert.Equal(t, 0, c.Pos())
}

func TestCursor_RemoveWord(t *testing.T) {
	c := emacsCursor("git status")
	c.Remove(Left, SpanWord)
	assert.Equal(t, "git ", c.Text())
}

func TestCursor_RemoveEdge(t *testing.T) {
	c := emacsCursor("git status")
	c.Move(Left, SpanWord)
	c.Remove(Left, SpanEdge)
	assert.Equal(t, "status", c.Text())
	assert.Equal(t, 0, c.Pos())
}

func TestCursor_Clear(t *testing.T) {
	c := emacsCursor("git status")
	c.Clear()
	assert.Equal(t, "", c.Text())
	assert.Equal(t, 0, c.Pos())
}

func TestCursor_Unicode(t *testing.T) {
	c := NewCursor("日本語", "日本語", JumpEmacs)
	assert.Equal(t, 3, c.Pos())

	c.Remove(Left, SpanChar)
	assert.Equal(t, "日本", c.Text())
}
