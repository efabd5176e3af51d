package expect

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// shellInitTest loads the integration script in a real PTY-backed shell and
// verifies the session environment comes up.
func shellInitTest(t *testing.T, shell string) {
	t.Parallel()
	AcquireTestSlot(t)
	SkipIfShellMissing(t, shell)
	SkipIfRecallMissing(t)

	tmp := t.TempDir()
	session, err := NewSession(shell,
		WithRecallInit(),
		WithEnv(
			"XDG_CONFIG_HOME="+filepath.Join(tmp, "config"),
			"XDG_DATA_HOME="+filepath.Join(tmp, "data"),
			"XDG_CACHE_HOME="+filepath.Join(tmp, "cache"),
		),
	)
	if err != nil {
		t.Fatalf("failed to start %s session: %v", shell, err)
	}
	defer session.Close()

	session.SendLine("echo session=$RECALL_SESSION_ID")
	out, err := session.ExpectRegexTimeout(`session=[0-9a-f-]{36}`, 5*time.Second)
	if err != nil {
		t.Fatalf("session ID not set after init: %v (output: %q)", err, out)
	}
}

func TestShellInit_Zsh(t *testing.T)  { shellInitTest(t, "zsh") }
func TestShellInit_Bash(t *testing.T) { shellInitTest(t, "bash") }
func TestShellInit_Fish(t *testing.T) { shellInitTest(t, "fish") }

// TestHistoryRecorded runs a command through the hooks and checks it lands
// in the database via `recall history`.
func TestHistoryRecorded(t *testing.T) {
	t.Parallel()
	AcquireTestSlot(t)
	SkipIfShellMissing(t, "zsh")
	SkipIfRecallMissing(t)

	tmp := t.TempDir()
	sentinel := fmt.Sprintf("echo recall-test-%d", time.Now().UnixNano())

	session, err := NewSession("zsh",
		WithRecallInit(),
		WithEnv(
			"XDG_CONFIG_HOME="+filepath.Join(tmp, "config"),
			"XDG_DATA_HOME="+filepath.Join(tmp, "data"),
			"XDG_CACHE_HOME="+filepath.Join(tmp, "cache"),
		),
	)
	if err != nil {
		t.Fatalf("failed to start zsh session: %v", err)
	}
	defer session.Close()

	session.SendLine(sentinel)
	// The hook records in the background after the next prompt.
	time.Sleep(500 * time.Millisecond)
	session.SendLine("recall history -n 5")

	out, err := session.ExpectTimeout(strings.TrimPrefix(sentinel, "echo "), 5*time.Second)
	if err != nil {
		t.Fatalf("command not found in history: %v (output: %q)", err, out)
	}
}
