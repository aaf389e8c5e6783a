package explanation

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/round"
	"github.com/abhisek/mathwhiz/internal/router"
)

func newTestScreen() *ExplanationScreen {
	return New(
		problemgen.Problem{Num1: 40, Num2: 2},
		round.Feedback{UserSum: 41, CorrectSum: 42, Explanation: "Add the ones: 0 + 2 = 2. Then the tens: 4. So 40 + 2 = 42."},
	)
}

func TestView_ShowsSolution(t *testing.T) {
	view := newTestScreen().View(80, 24)

	for _, want := range []string{"40 + 2", "41", "42", Heading, "Then the tens"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEscPops(t *testing.T) {
	s := newTestScreen()

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should return a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	s := newTestScreen()

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd != nil {
		t.Error("unrelated key should not produce a command")
	}
}
