package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/kidscreen/internal/questionnaire"
	"github.com/abhisek/kidscreen/internal/router"
	"github.com/abhisek/kidscreen/internal/screen"
	"github.com/abhisek/kidscreen/internal/screens/history"
	"github.com/abhisek/kidscreen/internal/screens/screening"
	"github.com/abhisek/kidscreen/internal/session"
	"github.com/abhisek/kidscreen/internal/store"
	"github.com/abhisek/kidscreen/internal/ui/components"
	"github.com/abhisek/kidscreen/internal/ui/theme"
)

// Menu labels, in display order.
const (
	LabelStart   = "START SCREENING"
	LabelHistory = "PAST RESULTS"
	LabelQuit    = "QUIT"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen. newSession is called for every screening run;
// a nil repo disables the history entry.
func New(newSession func() *session.Session, repo store.SubmissionRepo, logger zerolog.Logger) *HomeScreen {
	items := []components.MenuItem{
		{Label: LabelStart, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: screening.New(newSession(), logger)}
			}
		}},
		{Label: LabelHistory, Disabled: repo == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(repo)}
			}
		}},
		{Label: LabelQuit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		theme.Title.Width(cw).Render(questionnaire.AppTitle),
		theme.Subtitle.Width(cw).Render("Fifteen quick questions, one friendly result."),
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(h.menu.View()),
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render(questionnaire.Disclaimer),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(sections, "\n\n"))
}

func (h *HomeScreen) Title() string {
	return "Home"
}
