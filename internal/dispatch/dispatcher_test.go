package dispatch

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triagebot/internal/config"
	"triagebot/internal/linear"
	"triagebot/internal/slack"
	"triagebot/internal/ui"
)

// recordingTracker and recordingChat log side-effecting calls into a shared
// event list so tests can assert cross-client ordering.
type recordingTracker struct {
	*linear.MockTrackerClient
	events *[]string
}

func (r *recordingTracker) CreateComment(ctx context.Context, issueID, body string) error {
	*r.events = append(*r.events, "comment")
	return r.MockTrackerClient.CreateComment(ctx, issueID, body)
}

func (r *recordingTracker) UpdateIssueState(ctx context.Context, issueID, stateID string) error {
	*r.events = append(*r.events, "transition")
	return r.MockTrackerClient.UpdateIssueState(ctx, issueID, stateID)
}

type recordingChat struct {
	*slack.MockChatClient
	events *[]string
}

func (r *recordingChat) PostMessage(ctx context.Context, channelID, text string) error {
	*r.events = append(*r.events, "post")
	return r.MockChatClient.PostMessage(ctx, channelID, text)
}

func testConfig() *config.Config {
	return &config.Config{
		LinearAPIKey:     "lin_api_test",
		SlackBotToken:    "xoxb-test",
		SlackChannelID:   "C012345",
		AssistantSlackID: "U0ASSIST",
		Settings: config.Settings{
			MessageStyle:     config.StyleURL,
			DescriptionLimit: 500,
		},
	}
}

func testHarness() (*linear.MockTrackerClient, *slack.MockChatClient, *[]string, *config.Config, *Dispatcher) {
	tracker := linear.NewMockTrackerClient()
	chat := slack.NewMockChatClient()
	events := &[]string{}
	cfg := testConfig()
	d := NewDispatcher(
		&recordingTracker{MockTrackerClient: tracker, events: events},
		&recordingChat{MockChatClient: chat, events: events},
		cfg,
		ui.NewConsoleWithWriter(&bytes.Buffer{}),
	)
	return tracker, chat, events, cfg, d
}

func TestRunDispatchesHighestPriority(t *testing.T) {
	tracker, chat, events, cfg, d := testHarness()
	tracker.SetIssues([]linear.Issue{
		{ID: "i1", Identifier: "ENG-1", Title: "Later", Priority: linear.PriorityMedium},
		{ID: "i2", Identifier: "ENG-2", Title: "Now", Priority: linear.PriorityUrgent, URL: "https://linear.app/x/ENG-2"},
	})
	tracker.SetRelations("i2", &linear.Project{ID: "p1", Name: "Core"}, &linear.Team{ID: "t1", Key: "ENG"})
	tracker.SetTeamStates("t1", []linear.WorkflowState{
		{ID: "s1", Name: "Todo", Type: linear.StateUnstarted},
		{ID: "s2", Name: "In Progress", Type: linear.StateStarted},
	})

	result, err := d.Run(context.Background(), false)
	require.NoError(t, err)
	require.NotNil(t, result.Issue)
	assert.Equal(t, "ENG-2", result.Issue.Identifier)
	assert.NotEmpty(t, result.RunID)

	// Exactly one post and one comment, in that order.
	require.Len(t, chat.PostMessageCalls, 1)
	assert.Equal(t, cfg.SlackChannelID, chat.PostMessageCalls[0].ChannelID)
	assert.Equal(t, result.Message, chat.PostMessageCalls[0].Text)

	require.Len(t, tracker.CreateCommentCalls, 1)
	assert.Equal(t, "i2", tracker.CreateCommentCalls[0].IssueID)
	assert.Contains(t, tracker.CreateCommentCalls[0].Body, DispatchMarker)
	assert.Contains(t, tracker.CreateCommentCalls[0].Body, result.RunID)

	assert.Equal(t, []string{"post", "transition", "comment"}, *events)

	// The state transition targeted the started state named "In Progress".
	require.Len(t, tracker.UpdateIssueStateCalls, 1)
	assert.Equal(t, "s2", tracker.UpdateIssueStateCalls[0].StateID)

	// Relations resolved only for the selected issue.
	assert.Equal(t, []string{"i2"}, tracker.GetRelationsCalls)
}

func TestRunNoEligibleTask(t *testing.T) {
	tracker, chat, _, _, d := testHarness()
	tracker.SetIssues(nil)

	result, err := d.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Nil(t, result.Issue)

	// No chat post and no tracker writes.
	assert.Empty(t, chat.PostMessageCalls)
	assert.Empty(t, tracker.CreateCommentCalls)
	assert.Empty(t, tracker.UpdateIssueStateCalls)
}

func TestRunPostFailureAbortsAcknowledgment(t *testing.T) {
	tracker, chat, _, _, d := testHarness()
	tracker.SetIssues([]linear.Issue{{ID: "i1", Identifier: "ENG-1", Title: "Task", Priority: linear.PriorityHigh}})
	chat.SetPostMessageError(errors.New("channel_not_found"))

	_, err := d.Run(context.Background(), false)
	require.Error(t, err)

	// The issue must never be marked dispatched without a delivered message.
	assert.Empty(t, tracker.CreateCommentCalls)
	assert.Empty(t, tracker.UpdateIssueStateCalls)
}

func TestRunStateTransitionFailureDoesNotBlockComment(t *testing.T) {
	tracker, _, _, _, d := testHarness()
	tracker.SetIssues([]linear.Issue{{ID: "i1", Identifier: "ENG-1", Title: "Task", Priority: linear.PriorityHigh}})
	tracker.SetRelations("i1", nil, &linear.Team{ID: "t1", Key: "ENG"})
	tracker.SetTeamStates("t1", []linear.WorkflowState{{ID: "s1", Name: "Doing", Type: linear.StateStarted}})
	tracker.SetUpdateIssueStateError(errors.New("state locked"))

	result, err := d.Run(context.Background(), false)
	require.NoError(t, err)
	require.NotNil(t, result.Issue)

	// The comment is the durable dedup signal and still lands.
	require.Len(t, tracker.CreateCommentCalls, 1)
	assert.Contains(t, tracker.CreateCommentCalls[0].Body, DispatchMarker)
}

func TestRunTeamStateLookupFailureDoesNotBlockComment(t *testing.T) {
	tracker, _, _, _, d := testHarness()
	tracker.SetIssues([]linear.Issue{{ID: "i1", Identifier: "ENG-1", Title: "Task", Priority: linear.PriorityHigh}})
	tracker.SetRelations("i1", nil, &linear.Team{ID: "t1", Key: "ENG"})
	tracker.SetListTeamStatesError(errors.New("unavailable"))

	_, err := d.Run(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, tracker.CreateCommentCalls, 1)
}

func TestRunWithoutTeamSkipsTransition(t *testing.T) {
	tracker, _, _, _, d := testHarness()
	tracker.SetIssues([]linear.Issue{{ID: "i1", Identifier: "ENG-1", Title: "Task", Priority: linear.PriorityHigh}})

	_, err := d.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, tracker.ListTeamStatesCalls)
	assert.Empty(t, tracker.UpdateIssueStateCalls)
	require.Len(t, tracker.CreateCommentCalls, 1)
}

func TestRunDryRun(t *testing.T) {
	tracker, chat, _, _, d := testHarness()
	tracker.SetIssues([]linear.Issue{{ID: "i1", Identifier: "ENG-1", Title: "Task", Priority: linear.PriorityHigh}})

	result, err := d.Run(context.Background(), true)
	require.NoError(t, err)
	require.NotNil(t, result.Issue)
	assert.NotEmpty(t, result.Message)
	assert.True(t, result.DryRun)

	assert.Empty(t, chat.PostMessageCalls)
	assert.Empty(t, tracker.CreateCommentCalls)
	assert.Empty(t, tracker.UpdateIssueStateCalls)
}

func TestRunSkipDispatchedExcludesMarkedIssues(t *testing.T) {
	tracker, chat, _, cfg, d := testHarness()
	cfg.Settings.SkipDispatched = true
	tracker.SetIssues([]linear.Issue{
		{ID: "i1", Identifier: "ENG-1", Title: "Already sent", Priority: linear.PriorityUrgent},
		{ID: "i2", Identifier: "ENG-2", Title: "Fresh", Priority: linear.PriorityHigh},
	})
	tracker.SetComments("i1", []linear.Comment{{ID: "c1", Body: DispatchMarker + " run abc"}})

	result, err := d.Run(context.Background(), false)
	require.NoError(t, err)
	require.NotNil(t, result.Issue)
	assert.Equal(t, "ENG-2", result.Issue.Identifier)
	require.Len(t, chat.PostMessageCalls, 1)
}

func TestRunSearchError(t *testing.T) {
	tracker, chat, _, _, d := testHarness()
	tracker.SetSearchIssuesError(errors.New("api down"))

	_, err := d.Run(context.Background(), false)
	require.Error(t, err)
	assert.Empty(t, chat.PostMessageCalls)
}

func TestPickReviewState(t *testing.T) {
	progress := linear.WorkflowState{ID: "s2", Name: "In Progress", Type: linear.StateStarted}
	doing := linear.WorkflowState{ID: "s3", Name: "Doing", Type: linear.StateStarted}
	todo := linear.WorkflowState{ID: "s1", Name: "Todo", Type: linear.StateUnstarted}

	t.Run("prefers started state named progress", func(t *testing.T) {
		got := PickReviewState([]linear.WorkflowState{todo, doing, progress})
		require.NotNil(t, got)
		assert.Equal(t, "s2", got.ID)
	})

	t.Run("falls back to any started state", func(t *testing.T) {
		got := PickReviewState([]linear.WorkflowState{todo, doing})
		require.NotNil(t, got)
		assert.Equal(t, "s3", got.ID)
	})

	t.Run("nil when no started state exists", func(t *testing.T) {
		assert.Nil(t, PickReviewState([]linear.WorkflowState{todo}))
	})

	t.Run("case insensitive name match", func(t *testing.T) {
		upper := linear.WorkflowState{ID: "s4", Name: "IN PROGRESS", Type: linear.StateStarted}
		got := PickReviewState([]linear.WorkflowState{doing, upper})
		require.NotNil(t, got)
		assert.Equal(t, "s4", got.ID)
	})
}
