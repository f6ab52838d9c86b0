package linear

// IssueFilter describes the eligibility query sent to Linear. Fields map to
// the API's IssueFilter input object; zero values mean "no constraint".
type IssueFilter struct {
	// StateTypes restricts issues to workflow states of these categories
	// (e.g. unstarted, started).
	StateTypes []string
	// Unassigned, when true, matches only issues with no assignee.
	Unassigned bool
	// ExcludeUnsetPriority, when true, drops issues whose priority ordinal
	// is 0 (no priority).
	ExcludeUnsetPriority bool
	// ProjectIDs and TeamKeys are allow-lists; empty means no filter.
	ProjectIDs []string
	TeamKeys   []string
}

// toGraphQL serializes the filter to the nested map shape Linear's issues()
// query expects. The structure is always built field by field, never by
// string concatenation.
func (f IssueFilter) toGraphQL() map[string]interface{} {
	filter := map[string]interface{}{}

	if len(f.StateTypes) > 0 {
		filter["state"] = map[string]interface{}{
			"type": map[string]interface{}{"in": f.StateTypes},
		}
	}
	if f.Unassigned {
		filter["assignee"] = map[string]interface{}{"null": true}
	}
	if f.ExcludeUnsetPriority {
		filter["priority"] = map[string]interface{}{"neq": PriorityNone}
	}
	if len(f.ProjectIDs) > 0 {
		filter["project"] = map[string]interface{}{
			"id": map[string]interface{}{"in": f.ProjectIDs},
		}
	}
	if len(f.TeamKeys) > 0 {
		filter["team"] = map[string]interface{}{
			"key": map[string]interface{}{"in": f.TeamKeys},
		}
	}
	return filter
}
