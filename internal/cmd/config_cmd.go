package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/recall/internal/config"
)

var configCmd = &cobra.Command{
	Use:     "config [key] [value]",
	Short:   "Get or set configuration values",
	GroupID: groupSetup,
	Long: `Get or set recall configuration values.

Without arguments, lists all configuration keys.
With one argument, shows the value of that key.
With two arguments, sets the key to the value.

Configuration is stored in ~/.config/recall/config.yaml (XDG compliant).

Keys are in the format: section.key
Sections: search, ui, update, history

Examples:
  recall config                          # List all keys
  recall config search.filter_mode       # Get the default filter mode
  recall config search.filter_mode host  # Set the default filter mode
  recall config ui.show_preview true     # Enable the preview pane`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch len(args) {
	case 0:
		return listConfig(cfg, paths)
	case 1:
		return getConfig(cfg, args[0])
	case 2:
		return setConfig(cfg, args[0], args[1])
	}

	return nil
}

func listConfig(cfg *config.Config, paths *config.Paths) error {
	fmt.Printf("%sConfiguration Keys%s\n", colorBold, colorReset)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println()

	keys := config.ListKeys()
	var failedKeys []string
	for _, key := range keys {
		value, err := cfg.Get(key)
		if err != nil {
			failedKeys = append(failedKeys, key)
			continue
		}

		displayValue := value
		if displayValue == "" {
			displayValue = colorDim + "(not set)" + colorReset
		}

		fmt.Printf("  %s%s%s = %s\n", colorCyan, key, colorReset, displayValue)
	}

	if len(failedKeys) > 0 {
		fmt.Printf("\n%sWarning:%s Failed to retrieve keys: %s\n", colorYellow, colorReset, strings.Join(failedKeys, ", "))
	}

	fmt.Println()
	fmt.Printf("Config file: %s\n", paths.ConfigFile())

	return nil
}

func getConfig(cfg *config.Config, key string) error {
	value, err := cfg.Get(key)
	if err != nil {
		return err
	}

	if value == "" {
		fmt.Println("(not set)")
		return nil
	}

	fmt.Println(value)
	return nil
}

func setConfig(cfg *config.Config, key, value string) error {
	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s%s%s = %s\n", colorCyan, key, colorReset, value)
	return nil
}
