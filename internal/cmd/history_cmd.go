package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/runger/recall/internal/config"
	"github.com/runger/recall/internal/history"
	"github.com/runger/recall/internal/storage"
)

var (
	historyLimit   int
	historyCWD     bool
	historySession bool

	historyAddExit     int
	historyAddDuration int64
)

var historyCmd = &cobra.Command{
	Use:     "history [query]",
	Short:   "Show command history",
	GroupID: groupCore,
	Long: `Show command history from the recall database.

Without arguments, shows the most recent commands.
With a query argument, filters commands matching the configured
search mode.

History is stored in the local SQLite database and includes commands
from all shell sessions by default. Use --session or --cwd to narrow
the scope.

Examples:
  recall history                  # Show last 20 commands
  recall history --limit=50       # Show last 50 commands
  recall history git              # Show commands matching "git"
  recall history --cwd            # Only commands run in this directory
  recall history --session        # Only commands from this session`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var historyAddCmd = &cobra.Command{
	Use:   "add <command>",
	Short: "Record a command in the history database",
	Long: `Record a finished command in the history database.

This is invoked by the shell integration after every command; it is not
normally run by hand. The session ID, hostname, and working directory
are taken from the environment.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHistoryAdd,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of commands to show")
	historyCmd.Flags().BoolVar(&historyCWD, "cwd", false, "Only commands run in the current directory")
	historyCmd.Flags().BoolVar(&historySession, "session", false, "Only commands from the current session")

	historyAddCmd.Flags().IntVar(&historyAddExit, "exit", 0, "Exit code of the command")
	historyAddCmd.Flags().Int64Var(&historyAddDuration, "duration-ms", 0, "Command duration in milliseconds")

	historyCmd.AddCommand(historyAddCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnvOverrides()

	store, err := storage.NewSQLiteStore(cfg.DatabasePath())
	if err != nil {
		fmt.Printf("No history available. Database not found at: %s\n", cfg.DatabasePath())
		return nil
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := storage.FilterGlobal
	switch {
	case historySession:
		filter = storage.FilterSession
	case historyCWD:
		filter = storage.FilterDirectory
	}
	qctx := history.CurrentContext()

	var records []storage.Record
	if len(args) > 0 {
		searchMode, _ := storage.ParseSearchMode(cfg.Search.SearchMode)
		records, err = store.Search(ctx, searchMode, filter, qctx, args[0], historyLimit)
	} else {
		records, err = store.List(ctx, filter, qctx, historyLimit)
	}
	if err != nil {
		return fmt.Errorf("failed to query history: %w", err)
	}

	if len(records) == 0 {
		if len(args) > 0 {
			fmt.Printf("No commands found matching '%s'\n", args[0])
		} else {
			fmt.Println("No command history available.")
			fmt.Println("Tip: run 'recall import' to load your shell's existing history.")
		}
		return nil
	}

	// Most recent last for typical terminal usage.
	for i := len(records) - 1; i >= 0; i-- {
		printRecord(records[i])
	}

	fmt.Println()
	fmt.Printf("%sShowing %d command(s)%s\n", colorDim, len(records), colorReset)

	return nil
}

func printRecord(r storage.Record) {
	t := time.UnixMilli(r.StartedAtUnixMs)
	timestamp := t.Format("2006-01-02 15:04:05")

	exitCode := colorDim + "-" + colorReset
	if r.ExitCode != nil {
		if *r.ExitCode == 0 {
			exitCode = colorGreen + "0" + colorReset
		} else {
			exitCode = colorRed + strconv.Itoa(*r.ExitCode) + colorReset
		}
	}

	fmt.Printf("%s%s%s  [%s]  %s", colorDim, timestamp, colorReset, exitCode, r.Command)

	if r.DurationMs != nil {
		fmt.Printf("  %s(%s)%s", colorDim, formatDurationMs(*r.DurationMs), colorReset)
	}

	fmt.Println()
}

func formatDurationMs(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	if ms < 60000 {
		return fmt.Sprintf("%.1fs", float64(ms)/1000)
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	return fmt.Sprintf("%dm%ds", minutes, seconds)
}

func runHistoryAdd(cmd *cobra.Command, args []string) error {
	command := strings.TrimSpace(strings.Join(args, " "))
	if command == "" {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnvOverrides()

	store, err := storage.NewSQLiteStore(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	qctx := history.CurrentContext()
	record := &storage.Record{
		RecordID:        uuid.New().String(),
		Command:         command,
		Hostname:        qctx.Hostname,
		SessionID:       qctx.SessionID,
		CWD:             qctx.CWD,
		StartedAtUnixMs: time.Now().UnixMilli() - historyAddDuration,
	}
	if cmd.Flags().Changed("exit") {
		code := historyAddExit
		record.ExitCode = &code
	}
	if cmd.Flags().Changed("duration-ms") {
		d := historyAddDuration
		record.DurationMs = &d
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return store.Add(ctx, record)
}
