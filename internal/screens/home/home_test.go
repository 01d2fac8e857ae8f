package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/kidscreen/internal/predict"
	"github.com/abhisek/kidscreen/internal/router"
	"github.com/abhisek/kidscreen/internal/screens/history"
	"github.com/abhisek/kidscreen/internal/screens/screening"
	"github.com/abhisek/kidscreen/internal/session"
	"github.com/abhisek/kidscreen/internal/store"
)

type stubRepo struct{}

func (stubRepo) Append(context.Context, *store.Submission) error { return nil }
func (stubRepo) List(context.Context, store.QueryOpts) ([]store.Submission, error) {
	return nil, nil
}
func (stubRepo) Count(context.Context) (int, error) { return 0, nil }
func (stubRepo) Clear(context.Context) error       { return nil }
func (stubRepo) Prune(context.Context, int) error  { return nil }

func newSession() *session.Session {
	return session.New(predict.NewMock())
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestHome_StartPushesScreening(t *testing.T) {
	calls := 0
	h := New(func() *session.Session { calls++; return newSession() }, stubRepo{}, zerolog.Nop())

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*screening.ScreeningScreen); !ok {
		t.Errorf("pushed %T, want *screening.ScreeningScreen", push.Screen)
	}
	if calls != 1 {
		t.Errorf("session factory calls = %d, want 1", calls)
	}
}

func TestHome_HistoryPushesHistory(t *testing.T) {
	h := New(newSession, stubRepo{}, zerolog.Nop())

	h.Update(specialKey(tea.KeyDown))
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("pushed %T, want *history.HistoryScreen", push.Screen)
	}
}

func TestHome_HistoryDisabledWithoutRepo(t *testing.T) {
	h := New(newSession, nil, zerolog.Nop())

	h.Update(specialKey(tea.KeyDown))
	if h.menu.Selected != 2 {
		t.Errorf("selected = %d, want 2 (quit)", h.menu.Selected)
	}
}

func TestHome_View(t *testing.T) {
	h := New(newSession, stubRepo{}, zerolog.Nop())
	view := h.View(100, 30)
	for _, want := range []string{LabelStart, LabelHistory, LabelQuit} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
