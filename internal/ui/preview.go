package ui

import "github.com/charmbracelet/lipgloss"

var (
	previewBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)

	previewTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("12"))
)

// RenderPreview draws a titled box around a message, used by dry runs to
// show exactly what would be posted to the channel.
func RenderPreview(title, message string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		previewTitleStyle.Render(title),
		previewBoxStyle.Render(message),
	)
}
