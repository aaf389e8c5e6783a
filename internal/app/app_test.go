package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/router"
	"github.com/abhisek/mathwhiz/internal/screens/practice"
	"github.com/abhisek/mathwhiz/internal/screens/welcome"
	"github.com/abhisek/mathwhiz/internal/verify"
)

type stubVerifier struct{}

func (stubVerifier) Verify(context.Context, verify.Attempt) (*verify.Result, error) {
	return &verify.Result{IsCorrect: true, CorrectSum: 42}, nil
}

func testOptions(skipWelcome bool) Options {
	return Options{
		Generator:   problemgen.Fixed{Num1: 40, Num2: 2},
		Verifier:    stubVerifier{},
		ModelID:     "mock",
		SkipWelcome: skipWelcome,
	}
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("expected AppModel, got %T", next)
	}
	return am, cmd
}

func TestStartsAtWelcome(t *testing.T) {
	m := newAppModel(testOptions(false))
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Fatalf("expected welcome screen, got %T", m.router.Active())
	}
	if m.Init() == nil {
		t.Error("welcome screen should start its animation")
	}
}

func TestWelcomeHandsOverToPractice(t *testing.T) {
	m := newAppModel(testOptions(false))

	m, cmd := update(t, m, tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd == nil {
		t.Fatal("keypress on welcome should transition")
	}
	m, _ = update(t, m, cmd())

	if _, ok := m.router.Active().(*practice.PracticeScreen); !ok {
		t.Fatalf("expected practice screen, got %T", m.router.Active())
	}
	if m.router.Depth() != 1 {
		t.Errorf("welcome should be replaced, depth = %d", m.router.Depth())
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions(true))

	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestEscAtRootDoesNothing(t *testing.T) {
	m := newAppModel(testOptions(true))

	_, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc at the root screen should be a no-op")
	}
}

func TestEscPopsPushedScreen(t *testing.T) {
	m := newAppModel(testOptions(true))
	m, _ = update(t, m, router.PushScreenMsg{Screen: welcome.New(nil)})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	m, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should pop")
	}
	m, _ = update(t, m, cmd())
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestViewFrame(t *testing.T) {
	m := newAppModel(testOptions(true))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	content := m.render()
	for _, want := range []string{"MathWhiz", "Practice", "mock", "Check My Answer", "Ctrl+N", "Ctrl+C"} {
		if !strings.Contains(content, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestViewTooSmall(t *testing.T) {
	m := newAppModel(testOptions(true))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})

	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected min-size message")
	}
}
