package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/replybot/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the server, corpus and analysis settings.

Settings are stored in config.toml under the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by its dot-notation key.

Keys:
  server.addr               listen address for 'replybot serve'
  server.allowed_origins    comma-separated CORS origins, * for any
  server.rate_limit         requests per second, 0 disables limiting
  server.burst              requests allowed in a burst
  corpus.source             csv or sqlite
  corpus.path               CSV corpus path
  analysis.language         stopword language
  analysis.min_term_length  shortest token kept
  vectoriser.norm           none or l2

Examples:
  replybot settings set server.addr 127.0.0.1:9000
  replybot settings set corpus.source sqlite`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'replybot settings set <key> <value>' to fix configuration issues.")
		return nil
	}

	cmd.Println("Current Settings")
	cmd.Println("================")

	section := ""
	for _, key := range settingsService.Keys() {
		group, name, _ := strings.Cut(key, ".")
		if group != section {
			section = group
			cmd.Println()
			cmd.Printf("[%s]\n", section)
		}
		value, _ := services.Value(settings, key)
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %s = %s\n", name, value)
	}
	cmd.Println()
	cmd.Println("Configuration is valid.")
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s to: %s\n", key, value)
	return nil
}
