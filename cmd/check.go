package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"triagebot/internal/config"
	"triagebot/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and show resolved settings",
	Long: `Resolve configuration from the environment and the optional settings
file, validate it, and print the result with credentials masked.

Exits non-zero when any required setting is missing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Bold("Configuration OK"))
		fmt.Fprintf(out, "  %s: %s\n", config.EnvLinearAPIKey, maskSecret(cfg.LinearAPIKey))
		fmt.Fprintf(out, "  %s: %s\n", config.EnvSlackBotToken, maskSecret(cfg.SlackBotToken))
		fmt.Fprintf(out, "  %s: %s\n", config.EnvSlackChannelID, cfg.SlackChannelID)
		fmt.Fprintf(out, "  %s: %s\n", config.EnvAssistantSlackID, cfg.AssistantSlackID)
		fmt.Fprintf(out, "  %s: %s\n", config.EnvProjectIDs, formatList(cfg.ProjectIDs))
		fmt.Fprintf(out, "  %s: %s\n", config.EnvTeamKeys, formatList(cfg.TeamKeys))
		fmt.Fprintf(out, "  message_style: %s\n", cfg.Settings.MessageStyle)
		fmt.Fprintf(out, "  description_limit: %d\n", cfg.Settings.DescriptionLimit)
		fmt.Fprintf(out, "  include_backlog: %t\n", cfg.Settings.IncludeBacklog)
		fmt.Fprintf(out, "  include_unset_priority: %t\n", cfg.Settings.IncludeUnsetPriority)
		fmt.Fprintf(out, "  skip_dispatched: %t\n", cfg.Settings.SkipDispatched)
		return nil
	},
}

// maskSecret keeps a short recognizable prefix and hides the rest.
func maskSecret(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:8] + strings.Repeat("*", 4)
}

func formatList(values []string) string {
	if len(values) == 0 {
		return "(no filter)"
	}
	return strings.Join(values, ", ")
}
