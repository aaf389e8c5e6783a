package explanation

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/round"
	"github.com/abhisek/mathwhiz/internal/router"
	"github.com/abhisek/mathwhiz/internal/screen"
	"github.com/abhisek/mathwhiz/internal/ui/layout"
	"github.com/abhisek/mathwhiz/internal/ui/theme"
)

// Heading introduces the worked solution.
const Heading = "Here's how to solve it:"

// ExplanationScreen shows the worked solution for a wrong answer.
type ExplanationScreen struct {
	problem  problemgen.Problem
	feedback round.Feedback
}

var _ screen.Screen = (*ExplanationScreen)(nil)
var _ screen.KeyHintProvider = (*ExplanationScreen)(nil)

// New creates an ExplanationScreen for the given problem and feedback.
func New(problem problemgen.Problem, feedback round.Feedback) *ExplanationScreen {
	return &ExplanationScreen{problem: problem, feedback: feedback}
}

func (e *ExplanationScreen) Init() tea.Cmd {
	return nil
}

func (e *ExplanationScreen) Title() string {
	return "Explanation"
}

func (e *ExplanationScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (e *ExplanationScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "esc", "q", "enter":
			return e, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return e, nil
}

func (e *ExplanationScreen) View(width, height int) string {
	cardWidth := min(width-4, 64)
	textWidth := max(cardWidth-6, 10) // border + padding

	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(16)

	var b strings.Builder
	b.WriteString(label.Render("Problem") + theme.Body.Bold(true).Render(e.problem.Text()))
	b.WriteString("\n")
	b.WriteString(label.Render("Your answer") + theme.Incorrect.Render(fmt.Sprint(e.feedback.UserSum)))
	b.WriteString("\n")
	b.WriteString(label.Render("Correct answer") + theme.Correct.Render(fmt.Sprint(e.feedback.CorrectSum)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(Heading))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(textWidth).Render(e.feedback.Explanation))

	card := theme.Card.Width(cardWidth).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
