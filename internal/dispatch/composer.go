package dispatch

import (
	"fmt"
	"strings"

	"triagebot/internal/config"
	"triagebot/internal/linear"
)

// TruncationMarker is appended to a description cut at the length limit.
const TruncationMarker = "..."

// ComposeMessage renders the Slack handoff message for an issue. It is a
// pure function: the same issue and settings always produce the same string.
//
// The url style links the issue at the end of the message; the branch style
// instead names the issue identifier up front and closes with the exact git
// branch name the assistant should use. The two are mutually exclusive.
func ComposeMessage(issue *linear.Issue, assistantID string, settings config.Settings) string {
	var header strings.Builder
	header.WriteString(fmt.Sprintf("<@%s> please pick up ", assistantID))
	if settings.MessageStyle == config.StyleBranch && issue.Identifier != "" {
		header.WriteString(issue.Identifier)
	} else {
		header.WriteString("the next task")
	}
	if issue.Project != nil && issue.Project.Name != "" {
		header.WriteString(fmt.Sprintf(" in project %q", issue.Project.Name))
	}
	if issue.Team != nil && issue.Team.Key != "" {
		header.WriteString(fmt.Sprintf(" [%s]", issue.Team.Key))
	}
	header.WriteString(fmt.Sprintf(" and work on: %s", issue.Title))

	parts := []string{header.String()}

	if issue.Description != "" {
		parts = append(parts, TruncateDescription(issue.Description, settings.DescriptionLimit))
	}

	switch settings.MessageStyle {
	case config.StyleBranch:
		if issue.BranchName != "" {
			parts = append(parts, fmt.Sprintf("Use the branch name `%s` for any git branch you create.", issue.BranchName))
		}
	default:
		if issue.URL != "" {
			parts = append(parts, issue.URL)
		}
	}

	return strings.Join(parts, "\n\n")
}

// TruncateDescription cuts a description to at most limit characters,
// appending the truncation marker only when something was cut.
func TruncateDescription(description string, limit int) string {
	if limit <= 0 {
		return description
	}
	runes := []rune(description)
	if len(runes) <= limit {
		return description
	}
	return string(runes[:limit]) + TruncationMarker
}
