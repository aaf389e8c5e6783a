package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwhiz/internal/ui/theme"
)

// RenderNotice renders a toast-style error box with a bold title over a
// wrapped description.
func RenderNotice(title, description string, width int) string {
	inner := max(width-6, 10) // border + padding
	body := theme.Incorrect.Render(title) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Width(inner).Render(description)
	return theme.Notice.Width(width).Render(body)
}
