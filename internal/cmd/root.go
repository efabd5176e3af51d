// Package cmd wires the recall CLI together.
package cmd

import (
	"github.com/spf13/cobra"
)

const (
	groupCore  = "core"
	groupSetup = "setup"
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "shell history search that remembers context",
	Long: `recall - shell history search that remembers context
  - Ctrl+R → interactive fuzzy search over every session
  - filter by host, session, or directory`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupCore, Title: "Core Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)
}
