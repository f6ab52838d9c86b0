package linear

import "context"

// MockTrackerClient provides a mock implementation for testing
type MockTrackerClient struct {
	// Data to return
	issues     []Issue
	relations  map[string]issueRelations
	comments   map[string][]Comment
	teamStates map[string][]WorkflowState

	// Error control
	searchIssuesError     error
	getRelationsError     error
	listCommentsError     error
	listTeamStatesError   error
	updateIssueStateError error
	createCommentError    error

	// Call tracking
	SearchIssuesCalls     []IssueFilter
	GetRelationsCalls     []string
	ListCommentsCalls     []string
	ListTeamStatesCalls   []string
	UpdateIssueStateCalls []struct{ IssueID, StateID string }
	CreateCommentCalls    []struct{ IssueID, Body string }
}

type issueRelations struct {
	project *Project
	team    *Team
}

// NewMockTrackerClient creates a new mock client
func NewMockTrackerClient() *MockTrackerClient {
	return &MockTrackerClient{
		relations:  make(map[string]issueRelations),
		comments:   make(map[string][]Comment),
		teamStates: make(map[string][]WorkflowState),
	}
}

// Configuration methods

func (m *MockTrackerClient) SetIssues(issues []Issue) {
	m.issues = issues
}

func (m *MockTrackerClient) SetRelations(issueID string, project *Project, team *Team) {
	m.relations[issueID] = issueRelations{project: project, team: team}
}

func (m *MockTrackerClient) SetComments(issueID string, comments []Comment) {
	m.comments[issueID] = comments
}

func (m *MockTrackerClient) SetTeamStates(teamID string, states []WorkflowState) {
	m.teamStates[teamID] = states
}

// Error configuration methods

func (m *MockTrackerClient) SetSearchIssuesError(err error)     { m.searchIssuesError = err }
func (m *MockTrackerClient) SetGetRelationsError(err error)     { m.getRelationsError = err }
func (m *MockTrackerClient) SetListCommentsError(err error)     { m.listCommentsError = err }
func (m *MockTrackerClient) SetListTeamStatesError(err error)   { m.listTeamStatesError = err }
func (m *MockTrackerClient) SetUpdateIssueStateError(err error) { m.updateIssueStateError = err }
func (m *MockTrackerClient) SetCreateCommentError(err error)    { m.createCommentError = err }

// TrackerClient implementation

func (m *MockTrackerClient) SearchIssues(ctx context.Context, filter IssueFilter, limit int) ([]Issue, error) {
	m.SearchIssuesCalls = append(m.SearchIssuesCalls, filter)
	if m.searchIssuesError != nil {
		return nil, m.searchIssuesError
	}
	if limit > 0 && len(m.issues) > limit {
		return m.issues[:limit], nil
	}
	return m.issues, nil
}

func (m *MockTrackerClient) GetIssueRelations(ctx context.Context, issueID string) (*Project, *Team, error) {
	m.GetRelationsCalls = append(m.GetRelationsCalls, issueID)
	if m.getRelationsError != nil {
		return nil, nil, m.getRelationsError
	}
	rel := m.relations[issueID]
	return rel.project, rel.team, nil
}

func (m *MockTrackerClient) ListIssueComments(ctx context.Context, issueID string) ([]Comment, error) {
	m.ListCommentsCalls = append(m.ListCommentsCalls, issueID)
	if m.listCommentsError != nil {
		return nil, m.listCommentsError
	}
	return m.comments[issueID], nil
}

func (m *MockTrackerClient) ListTeamStates(ctx context.Context, teamID string) ([]WorkflowState, error) {
	m.ListTeamStatesCalls = append(m.ListTeamStatesCalls, teamID)
	if m.listTeamStatesError != nil {
		return nil, m.listTeamStatesError
	}
	return m.teamStates[teamID], nil
}

func (m *MockTrackerClient) UpdateIssueState(ctx context.Context, issueID, stateID string) error {
	m.UpdateIssueStateCalls = append(m.UpdateIssueStateCalls, struct{ IssueID, StateID string }{issueID, stateID})
	return m.updateIssueStateError
}

func (m *MockTrackerClient) CreateComment(ctx context.Context, issueID, body string) error {
	m.CreateCommentCalls = append(m.CreateCommentCalls, struct{ IssueID, Body string }{issueID, body})
	return m.createCommentError
}

// Ensure MockTrackerClient implements TrackerClient
var _ TrackerClient = (*MockTrackerClient)(nil)
