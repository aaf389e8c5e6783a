package practice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathwhiz/internal/llm"
	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/round"
	"github.com/abhisek/mathwhiz/internal/router"
	"github.com/abhisek/mathwhiz/internal/screens/explanation"
	"github.com/abhisek/mathwhiz/internal/verify"
)

// seqGenerator returns its problems in order, repeating the last one.
type seqGenerator struct {
	problems []problemgen.Problem
	n        int
}

func (g *seqGenerator) Generate() problemgen.Problem {
	p := g.problems[min(g.n, len(g.problems)-1)]
	g.n++
	return p
}

// spyVerifier records the round tag of each call.
type spyVerifier struct {
	result  *verify.Result
	err     error
	rounds  []string
	attempt []verify.Attempt
}

func (s *spyVerifier) Verify(ctx context.Context, a verify.Attempt) (*verify.Result, error) {
	s.rounds = append(s.rounds, llm.RoundFrom(ctx))
	s.attempt = append(s.attempt, a)
	return s.result, s.err
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlN() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}
}

func typeAnswer(p *PracticeScreen, s string) {
	for _, r := range s {
		p.Update(keyPress(r))
	}
}

// collectVerified runs cmd (and any batched commands) and returns the
// verification outcome it produced.
func collectVerified(t *testing.T, cmd tea.Cmd) verifiedMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case verifiedMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if vm, ok := c().(verifiedMsg); ok {
				return vm
			}
		}
	}
	t.Fatal("command produced no verification outcome")
	return verifiedMsg{}
}

func newTestScreen(v verify.Verifier) *PracticeScreen {
	gen := &seqGenerator{problems: []problemgen.Problem{{Num1: 40, Num2: 2}, {Num1: 7, Num2: 8}}}
	return New(gen, v)
}

func TestView_ShowsProblemAndButton(t *testing.T) {
	p := newTestScreen(&spyVerifier{})
	view := p.View(80, 20)

	for _, want := range []string{Subtitle, "40", "+", "2", "=", ButtonLabel} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEmptySubmitShowsPrompt(t *testing.T) {
	v := &spyVerifier{}
	p := newTestScreen(v)

	_, cmd := p.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("empty submit should not start verification")
	}
	if p.Round().Phase != round.PhaseIdle {
		t.Errorf("phase = %s, want idle", p.Round().Phase)
	}
	if !strings.Contains(p.View(80, 20), problemgen.EmptyAnswerPrompt) {
		t.Error("expected empty-answer prompt in view")
	}

	typeAnswer(p, "4")
	if strings.Contains(p.View(80, 20), problemgen.EmptyAnswerPrompt) {
		t.Error("typing should clear the prompt")
	}
	if len(v.rounds) != 0 {
		t.Error("verifier should not be called")
	}
}

func TestNonNumericSubmitRejected(t *testing.T) {
	p := newTestScreen(&spyVerifier{})
	typeAnswer(p, "4.5")

	_, cmd := p.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("non-integral answer should not start verification")
	}
	if !strings.Contains(p.View(80, 20), "whole number") {
		t.Error("expected whole-number hint in view")
	}
}

func TestCorrectAnswerFlow(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"isCorrect":true,"correctSum":42,"explanation":"Well done."}`),
	})
	p := newTestScreen(verify.NewService(mock, verify.DefaultConfig()))

	typeAnswer(p, "42")
	_, cmd := p.Update(specialKey(tea.KeyEnter))

	if p.Round().Phase != round.PhaseSubmitted {
		t.Fatalf("phase = %s, want submitted", p.Round().Phase)
	}
	if !strings.Contains(p.View(80, 20), PendingLabel) {
		t.Error("expected spinner label while verifying")
	}

	p.Update(collectVerified(t, cmd))

	if p.Round().Phase != round.PhaseResolved {
		t.Fatalf("phase = %s, want resolved", p.Round().Phase)
	}
	view := p.View(80, 20)
	if !strings.Contains(view, "Correct!") || !strings.Contains(view, "Great job!") {
		t.Errorf("expected success feedback, got:\n%s", view)
	}
	if strings.Contains(view, "Well done.") {
		t.Error("explanation should not be shown for a correct answer")
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 provider call, got %d", mock.CallCount())
	}
}

func TestWrongAnswerOpensExplanation(t *testing.T) {
	v := &spyVerifier{result: &verify.Result{
		IsCorrect:   false,
		CorrectSum:  42,
		Explanation: "Add the ones, then the tens.",
	}}
	p := newTestScreen(v)

	typeAnswer(p, "41")
	_, cmd := p.Update(specialKey(tea.KeyEnter))
	p.Update(collectVerified(t, cmd))

	view := p.View(80, 20)
	if !strings.Contains(view, "Not quite...") || !strings.Contains(view, "The correct answer is 42.") {
		t.Errorf("expected wrong-answer feedback, got:\n%s", view)
	}

	_, cmd = p.Update(keyPress('e'))
	if cmd == nil {
		t.Fatal("e should open the explanation")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*explanation.ExplanationScreen); !ok {
		t.Errorf("expected explanation screen, got %T", push.Screen)
	}

	if len(v.rounds) != 1 || v.rounds[0] != p.Round().ID {
		t.Errorf("verifier call not tagged with round ID: %v", v.rounds)
	}
	if v.attempt[0] != (verify.Attempt{Num1: 40, Num2: 2, UserSum: 41}) {
		t.Errorf("unexpected attempt %+v", v.attempt[0])
	}
}

func TestExplanationKeyIgnoredWithoutExplanation(t *testing.T) {
	p := newTestScreen(&spyVerifier{})

	_, cmd := p.Update(keyPress('e'))
	if cmd != nil {
		t.Error("e should do nothing before a wrong answer")
	}
}

func TestFailureShowsNoticeAndKeepsProblem(t *testing.T) {
	v := &spyVerifier{err: fmt.Errorf("%w: boom", verify.ErrFailed)}
	p := newTestScreen(v)
	before := p.Round().Problem

	typeAnswer(p, "42")
	_, cmd := p.Update(specialKey(tea.KeyEnter))
	p.Update(collectVerified(t, cmd))

	if p.Round().Phase != round.PhaseFailed {
		t.Fatalf("phase = %s, want failed", p.Round().Phase)
	}
	if p.Round().Problem != before {
		t.Error("failure must not change the problem")
	}
	view := p.View(80, 20)
	if !strings.Contains(view, round.FailureNotice.Title) {
		t.Errorf("expected failure notice, got:\n%s", view)
	}
	if strings.Contains(view, "boom") {
		t.Error("internal error details must not be shown")
	}

	// The learner can resubmit the same answer.
	v.err = nil
	v.result = &verify.Result{IsCorrect: true, CorrectSum: 42}
	_, cmd = p.Update(specialKey(tea.KeyEnter))
	p.Update(collectVerified(t, cmd))
	if p.Round().Phase != round.PhaseResolved {
		t.Errorf("phase after retry = %s, want resolved", p.Round().Phase)
	}
}

func TestNewProblemDropsStaleOutcome(t *testing.T) {
	v := &spyVerifier{result: &verify.Result{IsCorrect: true, CorrectSum: 42}}
	p := newTestScreen(v)

	typeAnswer(p, "42")
	_, cmd := p.Update(specialKey(tea.KeyEnter))

	p.Update(ctrlN())
	if p.Round().Problem != (problemgen.Problem{Num1: 7, Num2: 8}) {
		t.Fatalf("expected next problem, got %+v", p.Round().Problem)
	}
	if p.Round().Phase != round.PhaseIdle {
		t.Fatalf("phase = %s, want idle", p.Round().Phase)
	}
	if p.input.Value() != "" {
		t.Error("new problem should clear the input")
	}

	p.Update(collectVerified(t, cmd))

	if p.Round().Phase != round.PhaseIdle {
		t.Errorf("stale outcome changed phase to %s", p.Round().Phase)
	}
	if _, ok := p.Round().Feedback(); ok {
		t.Error("stale outcome should not produce feedback")
	}
}

func TestEnterIgnoredWhileVerifying(t *testing.T) {
	p := newTestScreen(&spyVerifier{result: &verify.Result{IsCorrect: true, CorrectSum: 42}})

	typeAnswer(p, "42")
	p.Update(specialKey(tea.KeyEnter))

	_, cmd := p.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("second submit while verifying should be ignored")
	}
	typeAnswer(p, "9")
	if p.input.Value() != "42" {
		t.Errorf("input should be frozen while verifying, got %q", p.input.Value())
	}
	if p.Round().Attempts != 1 {
		t.Errorf("attempts = %d, want 1", p.Round().Attempts)
	}
}

func TestKeyHints(t *testing.T) {
	p := newTestScreen(&spyVerifier{result: &verify.Result{CorrectSum: 42, Explanation: "Count on."}})

	if hasHint(p, "E") {
		t.Error("explanation hint should be hidden before any answer")
	}

	typeAnswer(p, "41")
	_, cmd := p.Update(specialKey(tea.KeyEnter))
	if hasHint(p, "Enter") {
		t.Error("submit hint should be hidden while verifying")
	}

	p.Update(collectVerified(t, cmd))
	if !hasHint(p, "E") {
		t.Error("expected explanation hint after a wrong answer")
	}
}

func hasHint(p *PracticeScreen, key string) bool {
	for _, h := range p.KeyHints() {
		if h.Key == key {
			return true
		}
	}
	return false
}
