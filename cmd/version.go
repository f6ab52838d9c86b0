package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "triagebot %s\n", appVersion)
		fmt.Fprintf(out, "commit: %s\n", appCommitHash)
		fmt.Fprintf(out, "built:  %s\n", appBuildDate)
	},
}
