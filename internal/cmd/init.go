package cmd

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/recall/internal/config"
	"github.com/runger/recall/internal/history"
)

//go:embed shell/zsh/recall.zsh
//go:embed shell/bash/recall.bash
//go:embed shell/fish/recall.fish
var shellScripts embed.FS

var initCmd = &cobra.Command{
	Use:     "init <shell>",
	Short:   "Output shell integration script",
	GroupID: groupSetup,
	Long: `Output the shell integration script for your shell.

The script binds Ctrl+R to the interactive search, records every
command into the history database, and assigns the session ID used
by session-scoped filtering.

Add this to your shell configuration file:

  # For Zsh (~/.zshrc):
  eval "$(recall init zsh)"

  # For Bash (~/.bashrc or ~/.bash_profile on macOS):
  eval "$(recall init bash)"

  # For Fish (~/.config/fish/config.fish):
  recall init fish | source`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"zsh", "bash", "fish"},
	RunE:      runInitCmd,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	shell := args[0]

	var filename string
	switch shell {
	case "zsh":
		filename = "shell/zsh/recall.zsh"
	case "bash":
		filename = "shell/bash/recall.bash"
	case "fish":
		filename = "shell/fish/recall.fish"
	default:
		return fmt.Errorf("unsupported shell: %s (supported: zsh, bash, fish)", shell)
	}

	content, err := shellScripts.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read shell script: %w", err)
	}

	// If RECALL_SESSION_ID is already set (re-sourcing), preserve it.
	sessionID := os.Getenv(history.SessionEnvVar)
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	// Load config to inject settings into the shell script.
	cfg, _ := config.Load() // Ignore errors; defaults are fine.
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// The up arrow opens the search only when a filter mode is configured
	// for the up-key binding.
	upBinding := cfg.Search.FilterModeShellUpKeyBinding != ""

	script := strings.ReplaceAll(string(content), "{{RECALL_SESSION_ID}}", sessionID)
	script = strings.ReplaceAll(script, "{{RECALL_UP_BINDING}}", strconv.FormatBool(upBinding))

	fmt.Print(script)
	return nil
}

// generateSessionID returns a UUID-v4 shaped ID without using crypto/rand so
// shell startup does not depend on entropy availability.
func generateSessionID() string {
	hostname, _ := os.Hostname()
	seed := strings.Join([]string{
		hostname,
		strconv.FormatInt(time.Now().UnixNano(), 10),
		strconv.Itoa(os.Getpid()),
		strconv.Itoa(os.Getppid()),
	}, ":")

	sum := sha256.Sum256([]byte(seed))
	id := make([]byte, 16)
	copy(id, sum[:16])

	// Set UUID v4 version and variant bits for format compatibility.
	id[6] = (id[6] & 0x0f) | 0x40
	id[8] = (id[8] & 0x3f) | 0x80

	hexID := hex.EncodeToString(id)
	return fmt.Sprintf("%s-%s-%s-%s-%s",
		hexID[0:8],
		hexID[8:12],
		hexID[12:16],
		hexID[16:20],
		hexID[20:32],
	)
}
