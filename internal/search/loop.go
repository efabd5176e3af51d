package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// pollInterval bounds how long one iteration waits for input, so the loop
// periodically re-renders even when the user is idle.
const pollInterval = 250 * time.Millisecond

var errInputClosed = errors.New("terminal input closed")

// Run drives the interactive search to completion and returns its terminal
// result: a chosen command, the query text, or "" for cancellation.
//
// The terminal is placed in raw mode with the alternate screen and mouse
// capture for the duration, and restored on every exit path. updateCh, if
// non-nil, delivers at most one newer-version notice from the background
// check.
func Run(ctx context.Context, sess *Session, updateCh <-chan string, version string) (string, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return "", fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return "", fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	// PollEvent blocks, so it runs on its own goroutine and feeds the
	// loop through a channel. Fini makes PollEvent return nil, which
	// ends the goroutine.
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	if err := sess.refreshQuery(ctx); err != nil {
		return "", fmt.Errorf("initial query failed: %w", err)
	}

	var cached *layout
	for {
		// Render phase.
		width, height := screen.Size()
		v := sess.View()
		compact := resolveCompact(sess.settings.Style, height)
		prevH := previewHeight(v, width, compact, sess.settings.ShowPreview)
		if !cached.matches(width, height, prevH, compact) {
			cached = computeLayout(width, height, prevH, compact)
		}
		sess.SetVisibleRows(cached.listH)
		draw(screen, v, cached, version)
		screen.Show()

		// Wait-and-apply phase: block until input, the version notice,
		// or the poll interval, whichever comes first.
		batch := StartBatch(sess)
		timer := time.NewTimer(pollInterval)

		select {
		case raw, ok := <-events:
			if !ok {
				timer.Stop()
				return "", errInputClosed
			}
			result, done, err := applyBuffered(batch, raw, events, screen)
			if err != nil {
				timer.Stop()
				return "", err
			}
			if done {
				timer.Stop()
				return result, nil
			}

		case notice, ok := <-updateCh:
			if ok && notice != "" {
				batch.Apply(UpdateNeeded{Version: notice})
			}
			// One-shot; never select on it again.
			updateCh = nil

		case <-timer.C:
		}
		timer.Stop()

		refreshed, err := batch.Commit(ctx)
		if err != nil {
			return "", fmt.Errorf("query failed: %w", err)
		}
		if refreshed {
			cached = nil
		}
	}
}

// applyBuffered applies the first raw event, then drains and applies
// everything already buffered without blocking, in arrival order. The
// drain stops the moment an event resolves the session.
func applyBuffered(batch *Batch, first tcell.Event, events <-chan tcell.Event, screen tcell.Screen) (string, bool, error) {
	if result, done := applyRaw(batch, first, screen); done {
		return result, true, nil
	}
	for {
		select {
		case raw, ok := <-events:
			if !ok {
				return "", false, errInputClosed
			}
			if result, done := applyRaw(batch, raw, screen); done {
				return result, true, nil
			}
		default:
			return "", false, nil
		}
	}
}

// applyRaw converts one raw terminal event and applies it if recognized.
// Resize events only resynchronize the screen; the next render picks up
// the new geometry.
func applyRaw(batch *Batch, raw tcell.Event, screen tcell.Screen) (string, bool) {
	if _, isResize := raw.(*tcell.EventResize); isResize {
		screen.Sync()
		return "", false
	}
	ev, ok := fromTerminal(raw)
	if !ok {
		return "", false
	}
	return batch.Apply(ev)
}
