package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/kidscreen/internal/predict"
	"github.com/abhisek/kidscreen/internal/router"
	"github.com/abhisek/kidscreen/internal/screens/home"
	"github.com/abhisek/kidscreen/internal/screens/screening"
	"github.com/abhisek/kidscreen/internal/screens/welcome"
)

func testModel(skipSplash bool) AppModel {
	return newAppModel(Options{
		Predictor:  predict.NewMock(),
		Logger:     zerolog.Nop(),
		Status:     "mock",
		SkipSplash: skipSplash,
	})
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestInitialScreen(t *testing.T) {
	if _, ok := testModel(false).router.Active().(*welcome.WelcomeScreen); !ok {
		t.Error("expected the splash first")
	}
	if _, ok := testModel(true).router.Active().(*home.HomeScreen); !ok {
		t.Error("expected home when the splash is skipped")
	}
}

func TestCtrlCQuits(t *testing.T) {
	_, cmd := update(testModel(true), tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestStartScreeningAndEscBack(t *testing.T) {
	m := testModel(true)

	m, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m, _ = update(m, cmd())
	if _, ok := m.router.Active().(*screening.ScreeningScreen); !ok {
		t.Fatalf("active = %T, want screening", m.router.Active())
	}

	m, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
	m, _ = update(m, router.PopScreenMsg{})
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestView(t *testing.T) {
	m := testModel(true)
	if got := m.render(); got != "" {
		t.Error("view should be empty before the first resize")
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected the min-size message")
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	view := m.render()
	for _, want := range []string{"kidscreen", "Home", "mock", home.LabelStart} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
