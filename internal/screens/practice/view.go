package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwhiz/internal/round"
	"github.com/abhisek/mathwhiz/internal/ui/components"
	"github.com/abhisek/mathwhiz/internal/ui/theme"
)

// Subtitle introduces the exercise above the problem.
const Subtitle = "Let's check your addition skills!"

func (p *PracticeScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(Subtitle))
	b.WriteString("\n\n")

	// Problem line: "num1 + num2 = [input]".
	prob := p.round.Problem
	problemLine := theme.Operand.Render(fmt.Sprint(prob.Num1)) +
		theme.Body.Render("+") +
		theme.Operand.Render(fmt.Sprint(prob.Num2)) +
		theme.Body.Render("= ") +
		p.input.View()
	b.WriteString(center.Render(problemLine))
	b.WriteString("\n")

	if p.inputErr != "" {
		b.WriteString(center.Foreground(theme.Accent).Render(p.inputErr))
	}
	b.WriteString("\n\n")

	if p.round.Phase == round.PhaseSubmitted {
		b.WriteString(center.Render(p.spinner.View()))
	} else {
		b.WriteString(center.Render(components.NewButton(ButtonLabel, true).View()))
	}
	b.WriteString("\n\n")

	if fb, ok := p.round.Feedback(); ok && !fb.Pending {
		b.WriteString(p.renderFeedback(fb, width))
	}

	return b.String()
}

// renderFeedback renders the verdict or the failure notice.
func (p *PracticeScreen) renderFeedback(fb round.Feedback, width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if fb.Notice != nil {
		boxWidth := min(width-4, 56)
		box := components.RenderNotice(fb.Notice.Title, fb.Notice.Description, boxWidth)
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	}

	var b strings.Builder
	if fb.Correct {
		b.WriteString(center.Render(theme.Correct.Render("✓ Correct!")))
		b.WriteString("\n")
		b.WriteString(center.Render(theme.Body.Render("Great job! You got the right answer.")))
		return b.String()
	}

	b.WriteString(center.Render(theme.Incorrect.Render("✗ Not quite...")))
	b.WriteString("\n")
	b.WriteString(center.Render(theme.Body.Render(fmt.Sprintf("The correct answer is %d.", fb.CorrectSum))))
	if fb.HasExplanation() {
		b.WriteString("\n\n")
		b.WriteString(center.Render(theme.Hint.Render("Press e to see how to solve it.")))
	}
	return b.String()
}
