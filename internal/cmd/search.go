package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/recall/internal/config"
	"github.com/runger/recall/internal/history"
	"github.com/runger/recall/internal/search"
	"github.com/runger/recall/internal/storage"
	"github.com/runger/recall/internal/update"
)

// Exit codes for interactive mode.
// These match the expectations of the shell scripts:
//
//	0 = selection made (use the result)
//	1 = cancelled by user (keep original input)
//	2 = fallback to native history (no TTY, error, etc.)
const (
	exitSuccess   = 0
	exitCancelled = 1
	exitFallback  = 2
)

var (
	searchInteractive   bool
	searchFilterMode    string
	searchShellUpKey    bool
	searchLimit         int
)

var searchCmd = &cobra.Command{
	Use:     "search [query]",
	Short:   "Search command history",
	GroupID: groupCore,
	Long: `Search command history.

Without --interactive, prints matching commands to stdout, newest first.
With --interactive, opens the full-screen search and prints the chosen
command on exit. The shell integration binds this to Ctrl+R.

Interactive exit codes: 0 = command chosen, 1 = cancelled,
2 = could not run (no TTY, locked, or an error occurred).

Examples:
  recall search "docker run"        # Print matching commands
  recall search -i                  # Interactive search
  recall search -i -- git           # Interactive search seeded with "git"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&searchInteractive, "interactive", "i", false, "open the full-screen interactive search")
	searchCmd.Flags().StringVar(&searchFilterMode, "filter-mode", "", "initial filter mode: global, host, session, or directory")
	searchCmd.Flags().BoolVar(&searchShellUpKey, "shell-up-key-binding", false, "invoked from the shell's up-key binding")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results (non-interactive)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	if !searchInteractive {
		return runPlainSearch(query)
	}

	code, err := runInteractiveSearch(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "recall: %v\n", err)
	}
	os.Exit(code)
	return nil
}

// runInteractiveSearch drives one interactive session and returns the exit
// code per the shell contract. All resources are released before it returns.
func runInteractiveSearch(query string) (int, error) {
	if err := checkTTY(); err != nil {
		return exitFallback, err
	}
	if err := checkTERM(); err != nil {
		return exitFallback, err
	}
	if err := checkTermWidth(); err != nil {
		return exitFallback, err
	}

	paths := config.DefaultPaths()
	if err := paths.EnsureDirectories(); err != nil {
		return exitFallback, err
	}

	// One interactive search per terminal at a time.
	lockFd, err := acquireLock(paths.LockFile())
	if err != nil {
		return exitFallback, err
	}
	defer releaseLock(lockFd)

	cfg, err := config.Load()
	if err != nil {
		return exitFallback, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnvOverrides()

	store, err := storage.NewSQLiteStore(cfg.DatabasePath())
	if err != nil {
		return exitFallback, fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	filter, err := resolveFilterMode(cfg)
	if err != nil {
		return exitFallback, err
	}

	sess := search.NewSession(store, search.SettingsFromConfig(cfg), history.CurrentContext(), query, filter)

	var updateCh <-chan string
	if cfg.Update.Check {
		checker := update.NewChecker(cfg.Update.URL, paths.LatestVersionFile(), cfg.Update.IntervalHours, Version)
		updateCh = checker.Begin(context.Background())
	}

	result, err := search.Run(context.Background(), sess, updateCh, Version)
	if err != nil {
		return exitFallback, err
	}
	if result == "" {
		return exitCancelled, nil
	}

	fmt.Println(result)
	return exitSuccess, nil
}

// resolveFilterMode picks the starting filter mode: the explicit flag wins,
// then the up-key-binding override, then the configured default.
func resolveFilterMode(cfg *config.Config) (storage.FilterMode, error) {
	name := cfg.Search.FilterMode
	if searchShellUpKey && cfg.Search.FilterModeShellUpKeyBinding != "" {
		name = cfg.Search.FilterModeShellUpKeyBinding
	}
	if searchFilterMode != "" {
		name = searchFilterMode
	}
	return storage.ParseFilterMode(name)
}

func runPlainSearch(query string) error {
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	searchMode, _ := storage.ParseSearchMode(cfg.Search.SearchMode)
	qctx := history.CurrentContext()

	var records []storage.Record
	if query == "" {
		records, err = store.List(ctx, storage.FilterGlobal, qctx, searchLimit)
	} else {
		records, err = store.Search(ctx, searchMode, storage.FilterGlobal, qctx, query, searchLimit)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	for _, r := range records {
		fmt.Println(r.Command)
	}
	return nil
}
