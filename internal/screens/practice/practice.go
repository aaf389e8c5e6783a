package practice

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathwhiz/internal/llm"
	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/round"
	"github.com/abhisek/mathwhiz/internal/router"
	"github.com/abhisek/mathwhiz/internal/screen"
	"github.com/abhisek/mathwhiz/internal/screens/explanation"
	"github.com/abhisek/mathwhiz/internal/ui/components"
	"github.com/abhisek/mathwhiz/internal/ui/layout"
	"github.com/abhisek/mathwhiz/internal/verify"
)

const (
	inputPlaceholder = "Type here..."
	inputWidth       = 12

	// ButtonLabel and PendingLabel name the submit control in its two states.
	ButtonLabel  = "Check My Answer"
	PendingLabel = "Verifying..."
)

// PracticeScreen implements screen.Screen for one addition round at a time.
type PracticeScreen struct {
	gen      problemgen.Generator
	verifier verify.Verifier
	round    *round.Round
	input    components.TextInput
	spinner  components.Spinner
	inputErr string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a PracticeScreen with a fresh problem from gen.
func New(gen problemgen.Generator, verifier verify.Verifier) *PracticeScreen {
	return &PracticeScreen{
		gen:      gen,
		verifier: verifier,
		round:    round.New(gen),
		input:    components.NewTextInput(inputPlaceholder, true, inputWidth),
		spinner:  components.NewSpinner(PendingLabel),
	}
}

func (p *PracticeScreen) Init() tea.Cmd {
	return p.input.Init()
}

func (p *PracticeScreen) Title() string {
	return "Practice"
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	if p.round.Phase == round.PhaseSubmitted {
		return []layout.KeyHint{
			{Key: "Ctrl+N", Description: "New problem"},
		}
	}

	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "Ctrl+N", Description: "New problem"},
	}
	if fb, ok := p.round.Feedback(); ok && fb.HasExplanation() {
		hints = append(hints, layout.KeyHint{Key: "E", Description: "Explanation"})
	}
	return hints
}

// Round exposes the current round for display and tests.
func (p *PracticeScreen) Round() *round.Round {
	return p.round
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case verifiedMsg:
		return p.handleVerified(msg)

	case components.SpinnerTickMsg:
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.KeyPressMsg:
		return p.handleKey(msg)
	}

	return p, nil
}

func (p *PracticeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+n":
		return p, p.newProblem()

	case "enter":
		return p, p.submit()

	case "e":
		fb, ok := p.round.Feedback()
		if !ok || !fb.HasExplanation() {
			return p, nil
		}
		next := explanation.New(p.round.Problem, fb)
		return p, func() tea.Msg {
			return router.PushScreenMsg{Screen: next}
		}
	}

	if p.round.Phase == round.PhaseSubmitted {
		return p, nil
	}

	p.inputErr = ""
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// submit validates the typed answer and starts verification.
func (p *PracticeScreen) submit() tea.Cmd {
	if p.round.Phase == round.PhaseSubmitted {
		return nil
	}

	userSum, err := p.input.NumericValue()
	switch {
	case errors.Is(err, problemgen.ErrEmptyAnswer):
		p.inputErr = problemgen.EmptyAnswerPrompt
		return nil
	case err != nil:
		p.inputErr = "Please enter a whole number."
		return nil
	}

	ticket, attempt, err := p.round.Submit(userSum)
	if err != nil {
		return nil
	}
	p.inputErr = ""
	p.input.Blur()

	return tea.Batch(p.spinner.Start(), p.verifyCmd(ticket, attempt))
}

func (p *PracticeScreen) verifyCmd(t round.Ticket, a verify.Attempt) tea.Cmd {
	v := p.verifier
	return func() tea.Msg {
		ctx := llm.WithRound(context.Background(), t.RoundID)
		res, err := v.Verify(ctx, a)
		return verifiedMsg{Ticket: t, Result: res, Err: err}
	}
}

func (p *PracticeScreen) handleVerified(msg verifiedMsg) (screen.Screen, tea.Cmd) {
	var err error
	if msg.Err != nil {
		err = p.round.Fail(msg.Ticket, msg.Err)
	} else {
		err = p.round.Resolve(msg.Ticket, msg.Result)
	}
	if errors.Is(err, round.ErrStale) {
		return p, nil
	}
	if err != nil {
		// A nil result with no error counts as a failed call.
		_ = p.round.Fail(msg.Ticket, err)
	}

	p.spinner.Stop()
	return p, p.input.Focus()
}

// newProblem discards the round, including any in-flight verification.
func (p *PracticeScreen) newProblem() tea.Cmd {
	p.round.NewProblem(p.gen)
	p.spinner.Stop()
	p.input.Reset()
	p.inputErr = ""
	return p.input.Focus()
}
