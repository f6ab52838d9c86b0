package linear

import (
	"context"
	"fmt"
)

// MaxSearchResults caps how many issues a search fetches. Only the first
// page is considered; the tool never paginates further.
const MaxSearchResults = 50

// Client talks to the Linear GraphQL API.
type Client struct {
	gql *graphqlClient
}

// NewClient creates a client for the public Linear endpoint.
func NewClient(apiKey string) *Client {
	return &Client{gql: newGraphQLClient(DefaultEndpoint, apiKey)}
}

// NewClientWithEndpoint creates a client against a custom endpoint (tests).
func NewClientWithEndpoint(endpoint, apiKey string) *Client {
	return &Client{gql: newGraphQLClient(endpoint, apiKey)}
}

const searchIssuesQuery = `
query SearchIssues($filter: IssueFilter, $first: Int!) {
  issues(filter: $filter, first: $first) {
    nodes {
      id
      identifier
      title
      description
      priority
      url
      branchName
      state { id name type }
    }
  }
}`

// SearchIssues returns up to limit issues matching the filter, in the order
// the tracker returned them. Limit is clamped to MaxSearchResults.
func (c *Client) SearchIssues(ctx context.Context, filter IssueFilter, limit int) ([]Issue, error) {
	if limit <= 0 || limit > MaxSearchResults {
		limit = MaxSearchResults
	}

	var resp struct {
		Issues struct {
			Nodes []Issue `json:"nodes"`
		} `json:"issues"`
	}
	vars := map[string]interface{}{
		"filter": filter.toGraphQL(),
		"first":  limit,
	}
	if err := c.gql.execute(ctx, searchIssuesQuery, vars, &resp); err != nil {
		return nil, fmt.Errorf("failed to search issues: %w", err)
	}
	return resp.Issues.Nodes, nil
}

const issueRelationsQuery = `
query IssueRelations($id: String!) {
  issue(id: $id) {
    project { id name }
    team { id key name }
  }
}`

// GetIssueRelations resolves the project and team of a single issue. Either
// or both may be nil when the issue has no such association.
func (c *Client) GetIssueRelations(ctx context.Context, issueID string) (*Project, *Team, error) {
	var resp struct {
		Issue struct {
			Project *Project `json:"project"`
			Team    *Team    `json:"team"`
		} `json:"issue"`
	}
	vars := map[string]interface{}{"id": issueID}
	if err := c.gql.execute(ctx, issueRelationsQuery, vars, &resp); err != nil {
		return nil, nil, fmt.Errorf("failed to resolve issue relations: %w", err)
	}
	return resp.Issue.Project, resp.Issue.Team, nil
}

const issueCommentsQuery = `
query IssueComments($id: String!) {
  issue(id: $id) {
    comments {
      nodes { id body }
    }
  }
}`

// ListIssueComments returns the comments on an issue.
func (c *Client) ListIssueComments(ctx context.Context, issueID string) ([]Comment, error) {
	var resp struct {
		Issue struct {
			Comments struct {
				Nodes []Comment `json:"nodes"`
			} `json:"comments"`
		} `json:"issue"`
	}
	vars := map[string]interface{}{"id": issueID}
	if err := c.gql.execute(ctx, issueCommentsQuery, vars, &resp); err != nil {
		return nil, fmt.Errorf("failed to list issue comments: %w", err)
	}
	return resp.Issue.Comments.Nodes, nil
}

const teamStatesQuery = `
query TeamStates($id: String!) {
  team(id: $id) {
    states {
      nodes { id name type }
    }
  }
}`

// ListTeamStates returns the workflow states available to a team.
func (c *Client) ListTeamStates(ctx context.Context, teamID string) ([]WorkflowState, error) {
	var resp struct {
		Team struct {
			States struct {
				Nodes []WorkflowState `json:"nodes"`
			} `json:"states"`
		} `json:"team"`
	}
	vars := map[string]interface{}{"id": teamID}
	if err := c.gql.execute(ctx, teamStatesQuery, vars, &resp); err != nil {
		return nil, fmt.Errorf("failed to list team states: %w", err)
	}
	return resp.Team.States.Nodes, nil
}

const updateIssueStateMutation = `
mutation UpdateIssueState($id: String!, $stateId: String!) {
  issueUpdate(id: $id, input: { stateId: $stateId }) {
    success
  }
}`

// UpdateIssueState moves an issue to the given workflow state.
func (c *Client) UpdateIssueState(ctx context.Context, issueID, stateID string) error {
	var resp struct {
		IssueUpdate struct {
			Success bool `json:"success"`
		} `json:"issueUpdate"`
	}
	vars := map[string]interface{}{"id": issueID, "stateId": stateID}
	if err := c.gql.execute(ctx, updateIssueStateMutation, vars, &resp); err != nil {
		return fmt.Errorf("failed to update issue state: %w", err)
	}
	if !resp.IssueUpdate.Success {
		return &APIError{Messages: []string{"issueUpdate reported failure"}}
	}
	return nil
}

const createCommentMutation = `
mutation CreateComment($issueId: String!, $body: String!) {
  commentCreate(input: { issueId: $issueId, body: $body }) {
    success
  }
}`

// CreateComment adds a comment to an issue.
func (c *Client) CreateComment(ctx context.Context, issueID, body string) error {
	var resp struct {
		CommentCreate struct {
			Success bool `json:"success"`
		} `json:"commentCreate"`
	}
	vars := map[string]interface{}{"issueId": issueID, "body": body}
	if err := c.gql.execute(ctx, createCommentMutation, vars, &resp); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	if !resp.CommentCreate.Success {
		return &APIError{Messages: []string{"commentCreate reported failure"}}
	}
	return nil
}
