package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"triagebot/internal/config"
	"triagebot/internal/dispatch"
	"triagebot/internal/linear"
	"triagebot/internal/slack"
	"triagebot/internal/ui"
)

// DispatchOptions contains options for the dispatch command
type DispatchOptions struct {
	DryRun         bool
	SkipDispatched bool
}

func newDispatchCmd() *cobra.Command {
	var opts DispatchOptions

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Select the next issue and hand it to the assistant",
		Long: `Perform one dispatch run: query Linear for unassigned eligible issues,
pick the highest-priority one, post it to the configured Slack channel
mentioning the assistant, then transition the issue and leave a marker
comment so it is not picked again.

Examples:
  triagebot dispatch                     # One full dispatch run
  triagebot dispatch --dry-run           # Compose and print, no side effects
  triagebot dispatch --skip-dispatched   # Exclude issues already carrying the marker`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatch(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Compose the message but skip the Slack post and tracker writes")
	cmd.Flags().BoolVar(&opts.SkipDispatched, "skip-dispatched", false, "Re-check candidate comments for the dispatch marker before selecting")

	return cmd
}

func runDispatch(ctx context.Context, opts DispatchOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.SkipDispatched {
		cfg.Settings.SkipDispatched = true
	}

	console := ui.NewConsole()
	tracker := linear.NewClient(cfg.LinearAPIKey)
	chat := slack.NewClient(cfg.SlackBotToken)

	dispatcher := dispatch.NewDispatcher(tracker, chat, cfg, console)
	result, err := dispatcher.Run(ctx, opts.DryRun)
	if err != nil {
		return err
	}

	if result.DryRun && result.Issue != nil {
		console.Println(ui.RenderPreview("Message preview", result.Message))
	}
	return nil
}
