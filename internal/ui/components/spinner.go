package components

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwhiz/internal/ui/theme"
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerTickMsg advances a Spinner by one frame.
type SpinnerTickMsg struct {
	ID int
}

// Spinner is a small frame-cycling activity indicator. Ticks carry the
// spinner's ID so that a restarted spinner ignores ticks from its old run.
type Spinner struct {
	Label string
	id    int
	frame int
}

// NewSpinner creates a stopped spinner.
func NewSpinner(label string) Spinner {
	return Spinner{Label: label}
}

// Start resets the animation and returns the first tick.
func (s *Spinner) Start() tea.Cmd {
	s.id++
	s.frame = 0
	return s.tick()
}

// Stop invalidates any pending tick.
func (s *Spinner) Stop() {
	s.id++
}

// Update advances the frame for this spinner's ticks and schedules the next.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	tick, ok := msg.(SpinnerTickMsg)
	if !ok || tick.ID != s.id {
		return s, nil
	}
	s.frame = (s.frame + 1) % len(spinnerFrames)
	return s, s.tick()
}

func (s Spinner) tick() tea.Cmd {
	id := s.id
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return SpinnerTickMsg{ID: id}
	})
}

// View renders the current frame and label.
func (s Spinner) View() string {
	frame := lipgloss.NewStyle().Foreground(theme.Secondary).Render(spinnerFrames[s.frame])
	if s.Label == "" {
		return frame
	}
	return frame + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.Label)
}
