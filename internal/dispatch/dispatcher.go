package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"triagebot/internal/config"
	"triagebot/internal/linear"
	"triagebot/internal/slack"
	"triagebot/internal/ui"
)

// DispatchMarker is the fixed substring written into the acknowledgment
// comment. Runs with skip_dispatched enabled look for it to avoid
// re-dispatching an issue.
const DispatchMarker = "🤖 Dispatched to AI assistant"

// Dispatcher runs one select-compose-deliver-acknowledge cycle.
type Dispatcher struct {
	tracker linear.TrackerClient
	chat    slack.ChatClient
	cfg     *config.Config
	console *ui.Console
	now     func() time.Time
}

// Result summarizes one dispatch run. Issue is nil when no eligible task
// was found, which is a normal outcome rather than an error.
type Result struct {
	RunID   string
	Issue   *linear.Issue
	Message string
	DryRun  bool
}

// NewDispatcher wires a dispatcher from its collaborators.
func NewDispatcher(tracker linear.TrackerClient, chat slack.ChatClient, cfg *config.Config, console *ui.Console) *Dispatcher {
	return &Dispatcher{
		tracker: tracker,
		chat:    chat,
		cfg:     cfg,
		console: console,
		now:     time.Now,
	}
}

// Run performs exactly one dispatch cycle. With dryRun set it stops after
// composing the message: no Slack post and no tracker writes.
func (d *Dispatcher) Run(ctx context.Context, dryRun bool) (*Result, error) {
	result := &Result{RunID: uuid.NewString(), DryRun: dryRun}
	d.console.Printf("Run %s: searching for eligible issues...\n", result.RunID)

	issues, err := d.tracker.SearchIssues(ctx, BuildFilter(d.cfg), linear.MaxSearchResults)
	if err != nil {
		return nil, err
	}
	d.console.Printf("Found %d candidate issue(s)\n", len(issues))

	if d.cfg.Settings.SkipDispatched {
		issues, err = excludeDispatched(ctx, d.tracker, issues)
		if err != nil {
			return nil, err
		}
		d.console.Printf("%d candidate(s) remain after dispatch-marker check\n", len(issues))
	}

	issue := SelectIssue(issues)
	if issue == nil {
		d.console.Println(ui.InfoText("No eligible task found, nothing to do"))
		return result, nil
	}
	d.console.Printf("Selected %s (priority %d): %s\n", issue.Identifier, issue.Priority, issue.Title)

	project, team, err := d.tracker.GetIssueRelations(ctx, issue.ID)
	if err != nil {
		return nil, err
	}
	issue.Project = project
	issue.Team = team

	result.Issue = issue
	result.Message = ComposeMessage(issue, d.cfg.AssistantSlackID, d.cfg.Settings)

	if dryRun {
		d.console.Println(ui.WarningText("Dry run: skipping Slack post and tracker writes"))
		return result, nil
	}

	// Delivery must succeed before any tracker write: an issue is never
	// marked dispatched without the channel having been notified.
	if err := d.chat.PostMessage(ctx, d.cfg.SlackChannelID, result.Message); err != nil {
		return nil, err
	}
	d.console.Println(ui.SuccessText(fmt.Sprintf("Posted %s to channel %s", issue.Identifier, d.cfg.SlackChannelID)))

	if err := d.acknowledge(ctx, issue, result.RunID); err != nil {
		return nil, err
	}
	d.console.Println(ui.SuccessText(fmt.Sprintf("Acknowledged %s in Linear", issue.Identifier)))

	return result, nil
}

// acknowledge moves the issue toward "in progress" (best effort) and writes
// the marker comment. The comment is the durable don't-re-dispatch signal,
// so a failed state transition only logs a warning and never blocks it.
func (d *Dispatcher) acknowledge(ctx context.Context, issue *linear.Issue, runID string) error {
	if err := d.transitionState(ctx, issue); err != nil {
		d.console.Println(ui.WarningText(fmt.Sprintf("State transition for %s failed: %v", issue.Identifier, err)))
	}

	body := fmt.Sprintf("%s\n\nRun %s posted this issue to the assistant channel at %s.",
		DispatchMarker, runID, d.now().UTC().Format(time.RFC3339))
	return d.tracker.CreateComment(ctx, issue.ID, body)
}

// transitionState moves the issue to its team's review state, when one
// exists. Issues without a resolved team are left untouched.
func (d *Dispatcher) transitionState(ctx context.Context, issue *linear.Issue) error {
	if issue.Team == nil {
		return nil
	}
	states, err := d.tracker.ListTeamStates(ctx, issue.Team.ID)
	if err != nil {
		return err
	}
	state := PickReviewState(states)
	if state == nil {
		return nil
	}
	return d.tracker.UpdateIssueState(ctx, issue.ID, state.ID)
}

// PickReviewState chooses the workflow state an issue moves to on dispatch:
// a started-category state whose name mentions "progress" when available,
// any started-category state otherwise, nil when the team has none.
func PickReviewState(states []linear.WorkflowState) *linear.WorkflowState {
	var fallback *linear.WorkflowState
	for i := range states {
		if states[i].Type != linear.StateStarted {
			continue
		}
		if strings.Contains(strings.ToLower(states[i].Name), "progress") {
			return &states[i]
		}
		if fallback == nil {
			fallback = &states[i]
		}
	}
	return fallback
}
