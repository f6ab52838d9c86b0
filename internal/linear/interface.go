package linear

import "context"

// TrackerClient defines the tracker operations the dispatcher needs.
// This allows for easy mocking and dependency injection in tests.
type TrackerClient interface {
	SearchIssues(ctx context.Context, filter IssueFilter, limit int) ([]Issue, error)
	GetIssueRelations(ctx context.Context, issueID string) (*Project, *Team, error)
	ListIssueComments(ctx context.Context, issueID string) ([]Comment, error)
	ListTeamStates(ctx context.Context, teamID string) ([]WorkflowState, error)
	UpdateIssueState(ctx context.Context, issueID, stateID string) error
	CreateComment(ctx context.Context, issueID, body string) error
}

// Ensure Client implements TrackerClient
var _ TrackerClient = (*Client)(nil)
