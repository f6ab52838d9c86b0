package linear

// Priority ordinals as Linear reports them. 0 means no priority has been
// set; 1 is the most urgent explicit priority and 4 the least.
const (
	PriorityNone   = 0
	PriorityUrgent = 1
	PriorityHigh   = 2
	PriorityMedium = 3
	PriorityLow    = 4
)

// Workflow state categories ("type" in the Linear API).
const (
	StateBacklog   = "backlog"
	StateUnstarted = "unstarted"
	StateStarted   = "started"
	StateCompleted = "completed"
	StateCanceled  = "canceled"
)

// Issue is a read-only view of a Linear issue. Project, Team and Assignee
// are resolved lazily and may be nil.
type Issue struct {
	ID          string         `json:"id"`
	Identifier  string         `json:"identifier"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    int            `json:"priority"`
	URL         string         `json:"url"`
	BranchName  string         `json:"branchName"`
	State       *WorkflowState `json:"state,omitempty"`
	Project     *Project       `json:"project,omitempty"`
	Team        *Team          `json:"team,omitempty"`
	Assignee    *User          `json:"assignee,omitempty"`
}

// WorkflowState is one concrete state of a team's workflow.
type WorkflowState struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Team represents a Linear team.
type Team struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Project represents a Linear project.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User represents a Linear user.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Comment is a comment on an issue. This tool only ever reads bodies (for
// the dispatch-marker check) and writes new comments.
type Comment struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

// EffectivePriority maps the unset ordinal after every explicit priority so
// that ascending sorts place unset issues last.
func (i *Issue) EffectivePriority() int {
	if i.Priority == PriorityNone {
		return PriorityLow + 1
	}
	return i.Priority
}
