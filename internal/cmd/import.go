package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/recall/internal/config"
	"github.com/runger/recall/internal/history"
	"github.com/runger/recall/internal/storage"
)

var importForce bool

var importCmd = &cobra.Command{
	Use:     "import [shell]",
	Short:   "Import existing shell history",
	GroupID: groupSetup,
	Long: `Import your shell's existing history file into the recall database.

Without an argument, the shell is detected from $SHELL. Importing again
for the same shell replaces the previous import; use --force to skip the
already-imported check.

Examples:
  recall import          # Import from the current shell's history
  recall import zsh      # Import ~/.zsh_history
  recall import fish     # Import fish's history file`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"zsh", "bash", "fish"},
	RunE:      runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importForce, "force", false, "Reimport even if history was already imported")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	shell := ""
	if len(args) > 0 {
		shell = args[0]
	} else {
		shell = history.DetectShell()
		if shell == "" {
			return fmt.Errorf("could not detect shell; pass one of: zsh, bash, fish")
		}
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

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if !importForce {
		has, err := store.HasImported(ctx, shell)
		if err != nil {
			return err
		}
		if has {
			fmt.Printf("History for %s was already imported. Use --force to reimport.\n", shell)
			return nil
		}
	}

	entries, err := history.ImportForShell(shell, cfg.History.ImportLimit)
	if err != nil {
		return fmt.Errorf("failed to read %s history: %w", shell, err)
	}
	if len(entries) == 0 {
		fmt.Printf("No %s history found to import.\n", shell)
		return nil
	}

	imported, err := store.ImportHistory(ctx, entries, shell)
	if err != nil {
		return fmt.Errorf("failed to import history: %w", err)
	}

	fmt.Printf("%sImported %d command(s) from %s history.%s\n", colorGreen, imported, shell, colorReset)
	return nil
}
