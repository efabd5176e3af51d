package storage

import (
	"context"
	"testing"
	"time"

	"github.com/runger/recall/internal/history"
)

func TestImportHistory_Basic(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	entries := []history.ImportEntry{
		{Command: "git status", Timestamp: time.UnixMilli(1000)},
		{Command: "make build", Timestamp: time.UnixMilli(2000)},
		{Command: ""},
	}

	n, err := store.ImportHistory(ctx, entries, "zsh")
	if err != nil {
		t.Fatalf("ImportHistory() error = %v", err)
	}
	if n != 2 {
		t.Errorf("ImportHistory() = %d, want 2", n)
	}

	has, err := store.HasImported(ctx, "zsh")
	if err != nil {
		t.Fatalf("HasImported() error = %v", err)
	}
	if !has {
		t.Error("HasImported() = false after import")
	}
}

func TestImportHistory_Empty(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	n, err := store.ImportHistory(ctx, nil, "bash")
	if err != nil {
		t.Fatalf("ImportHistory() error = %v", err)
	}
	if n != 0 {
		t.Errorf("ImportHistory() = %d, want 0", n)
	}

	has, err := store.HasImported(ctx, "bash")
	if err != nil {
		t.Fatalf("HasImported() error = %v", err)
	}
	if has {
		t.Error("HasImported() = true with no imports")
	}
}

func TestImportHistory_ReplacesPreviousImport(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	first := []history.ImportEntry{
		{Command: "old command", Timestamp: time.UnixMilli(1000)},
		{Command: "older command", Timestamp: time.UnixMilli(500)},
	}
	if _, err := store.ImportHistory(ctx, first, "fish"); err != nil {
		t.Fatalf("ImportHistory() error = %v", err)
	}

	second := []history.ImportEntry{
		{Command: "new command", Timestamp: time.UnixMilli(2000)},
	}
	n, err := store.ImportHistory(ctx, second, "fish")
	if err != nil {
		t.Fatalf("ImportHistory() rerun error = %v", err)
	}
	if n != 1 {
		t.Errorf("ImportHistory() = %d, want 1", n)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d after reimport, want 1", count)
	}
}

func TestImportHistory_UntimestampedKeepFileOrder(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	entries := []history.ImportEntry{
		{Command: "first"},
		{Command: "second"},
		{Command: "third"},
	}
	if _, err := store.ImportHistory(ctx, entries, "bash"); err != nil {
		t.Fatalf("ImportHistory() error = %v", err)
	}

	records, err := store.List(ctx, FilterGlobal, history.Context{}, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("List() returned %d records, want 3", len(records))
	}
	want := []string{"third", "second", "first"}
	for i, w := range want {
		if records[i].Command != w {
			t.Errorf("records[%d].Command = %q, want %q", i, records[i].Command, w)
		}
	}
}

func TestImportSessionID(t *testing.T) {
	t.Parallel()

	if got := ImportSessionID("zsh"); got != "imported-zsh" {
		t.Errorf("ImportSessionID(zsh) = %q, want imported-zsh", got)
	}
}
