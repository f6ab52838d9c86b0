package cmd

import (
	"github.com/spf13/cobra"
)

// Version information (set at build time)
var (
	appVersion    = "dev"
	appCommitHash = "unknown"
	appBuildDate  = "unknown"
)

// SetVersionInfo sets the version information from build-time variables
func SetVersionInfo(version, commitHash, buildDate string) {
	appVersion = version
	appCommitHash = commitHash
	appBuildDate = buildDate
}

// NewRootCmd creates a new instance of the root command for testing
// This prevents shared state issues in concurrent tests
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triagebot",
		Short: "Hand off the next Linear issue to an AI assistant via Slack",
		Long: `triagebot selects the highest-priority unassigned issue from Linear,
posts it to a Slack channel mentioning an AI assistant account, and marks
the issue dispatched in Linear so the next run picks a different one.

Run it from cron or a CI schedule; each invocation performs one dispatch.

Examples:
  triagebot dispatch            # Perform one dispatch run
  triagebot dispatch --dry-run  # Show what would be posted, no side effects
  triagebot check               # Validate configuration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Add all subcommands
	cmd.AddCommand(newDispatchCmd())
	cmd.AddCommand(checkCmd)
	cmd.AddCommand(versionCmd)

	return cmd
}

var rootCmd = NewRootCmd()

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
