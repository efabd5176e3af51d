package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/runger/recall/internal/cmdutil"
	"github.com/runger/recall/internal/config"
	"github.com/runger/recall/internal/storage"
)

var (
	statsLimit int
	statsBase  bool
)

// maxBarWidth is the widest the count bar renders.
const maxBarWidth = 30

var (
	statsTitleStyle = lipgloss.NewStyle().Bold(true)
	statsBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	statsCountStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Show history statistics",
	GroupID: groupCore,
	Long: `Show the most frequently run commands.

With --base, commands are grouped by their base command (the program
name, ignoring arguments and wrappers like sudo or env).

Examples:
  recall stats             # Top 10 commands
  recall stats -n 25       # Top 25 commands
  recall stats --base      # Group by base command`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVarP(&statsLimit, "limit", "n", 10, "Number of commands to show")
	statsCmd.Flags().BoolVar(&statsBase, "base", false, "Group by base command")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	// lipgloss renders through termenv; honor NO_COLOR and pipes.
	lipgloss.SetColorProfile(termenv.EnvColorProfile())

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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := store.Count(ctx)
	if err != nil {
		return err
	}

	// Over-fetch when grouping by base command, since distinct normalized
	// commands collapse further.
	fetch := statsLimit
	if statsBase {
		fetch = storage.MaxQueryLimit
	}
	counts, err := store.TopCommands(ctx, fetch)
	if err != nil {
		return err
	}
	if statsBase {
		counts = groupByBase(counts, statsLimit)
	}

	if len(counts) == 0 {
		fmt.Println("No command history available.")
		return nil
	}

	fmt.Println(statsTitleStyle.Render(fmt.Sprintf("Top commands (%d total records)", total)))
	fmt.Println()

	maxCount := counts[0].Count
	for _, c := range counts {
		bar := barFor(c.Count, maxCount)
		fmt.Printf("%s %s %s\n",
			statsBarStyle.Render(bar),
			statsCountStyle.Render(fmt.Sprintf("%6d", c.Count)),
			c.Command,
		)
	}
	return nil
}

// groupByBase re-aggregates counts by base command and returns the top n.
func groupByBase(counts []storage.CommandCount, n int) []storage.CommandCount {
	byBase := make(map[string]int64)
	for _, c := range counts {
		base := cmdutil.BaseCommand(c.Command)
		if base == "" {
			continue
		}
		byBase[base] += c.Count
	}

	grouped := make([]storage.CommandCount, 0, len(byBase))
	for base, count := range byBase {
		grouped = append(grouped, storage.CommandCount{Command: base, Count: count})
	}
	sort.Slice(grouped, func(i, j int) bool {
		if grouped[i].Count != grouped[j].Count {
			return grouped[i].Count > grouped[j].Count
		}
		return grouped[i].Command < grouped[j].Command
	})

	if len(grouped) > n {
		grouped = grouped[:n]
	}
	return grouped
}

func barFor(count, maxCount int64) string {
	if maxCount <= 0 {
		return strings.Repeat(" ", maxBarWidth)
	}
	w := int(count * maxBarWidth / maxCount)
	if w < 1 {
		w = 1
	}
	return strings.Repeat("▮", w) + strings.Repeat(" ", maxBarWidth-w)
}
