//go:build windows

package cmd

import (
	"fmt"
	"os"
)

// Windows consoles have no /dev/tty; rely on stdin being terminal-like and
// let the screen layer fail cleanly when it is not.
func checkTTY() error {
	if fi, err := os.Stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		return nil
	}
	return fmt.Errorf("no console available")
}

func checkTERM() error {
	if os.Getenv("TERM") == "dumb" {
		return fmt.Errorf("TERM=dumb is not supported")
	}
	return nil
}

func checkTermWidth() error { return nil }

// Advisory locking is a no-op on Windows; concurrent sessions are rare and
// SQLite's busy timeout covers the database.
func acquireLock(path string) (int, error) { return -1, nil }

func releaseLock(fd int) {}
