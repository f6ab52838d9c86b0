package dispatch

import (
	"context"
	"sort"
	"strings"
	"sync"

	"triagebot/internal/config"
	"triagebot/internal/linear"
)

// BuildFilter derives the tracker eligibility query from configuration.
// Unassigned is always required; the remaining constraints follow the
// configured policy knobs and allow-lists.
func BuildFilter(cfg *config.Config) linear.IssueFilter {
	stateTypes := []string{linear.StateUnstarted, linear.StateStarted}
	if cfg.Settings.IncludeBacklog {
		stateTypes = append([]string{linear.StateBacklog}, stateTypes...)
	}
	return linear.IssueFilter{
		StateTypes:           stateTypes,
		Unassigned:           true,
		ExcludeUnsetPriority: !cfg.Settings.IncludeUnsetPriority,
		ProjectIDs:           cfg.ProjectIDs,
		TeamKeys:             cfg.TeamKeys,
	}
}

// SelectIssue picks the highest-priority issue from a batch: a stable sort
// by ascending priority ordinal with unset priority placed last. Ties keep
// whatever order the tracker returned, which the Linear API leaves
// unspecified. Returns nil for an empty batch.
func SelectIssue(issues []linear.Issue) *linear.Issue {
	if len(issues) == 0 {
		return nil
	}
	sorted := make([]linear.Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EffectivePriority() < sorted[j].EffectivePriority()
	})
	top := sorted[0]
	return &top
}

// excludeDispatched removes candidates that already carry the dispatch
// marker in a comment. The per-candidate comment lookups run concurrently;
// result order matches the input order so the tie-break stays stable.
func excludeDispatched(ctx context.Context, tracker linear.TrackerClient, issues []linear.Issue) ([]linear.Issue, error) {
	if len(issues) == 0 {
		return issues, nil
	}

	dispatched := make([]bool, len(issues))
	errs := make([]error, len(issues))
	var wg sync.WaitGroup
	for i := range issues {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			comments, err := tracker.ListIssueComments(ctx, issues[i].ID)
			if err != nil {
				errs[i] = err
				return
			}
			for _, c := range comments {
				if strings.Contains(c.Body, DispatchMarker) {
					dispatched[i] = true
					return
				}
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	remaining := make([]linear.Issue, 0, len(issues))
	for i, issue := range issues {
		if !dispatched[i] {
			remaining = append(remaining, issue)
		}
	}
	return remaining, nil
}
