package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/kidscreen/internal/predict"
	"github.com/abhisek/kidscreen/internal/router"
	"github.com/abhisek/kidscreen/internal/screen"
	"github.com/abhisek/kidscreen/internal/screens/home"
	"github.com/abhisek/kidscreen/internal/screens/welcome"
	"github.com/abhisek/kidscreen/internal/session"
	"github.com/abhisek/kidscreen/internal/store"
	"github.com/abhisek/kidscreen/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Predictor predict.Predictor
	Repo      store.SubmissionRepo // nil disables past results
	Logger    zerolog.Logger
	// Status is shown on the right of the header, e.g. the prediction host.
	Status string
	// SkipSplash starts on the home screen.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen {
		newSession := func() *session.Session {
			return session.New(opts.Predictor, session.WithLogger(opts.Logger))
		}
		return home.New(newSession, opts.Repo, opts.Logger)
	}

	var initial screen.Screen
	if opts.SkipSplash {
		initial = homeFactory()
	} else {
		initial = welcome.New(homeFactory)
	}

	return AppModel{
		router: router.New(initial),
		status: opts.Status,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, screen.Status(active, m.status), m.width)
	hints := screen.Hints(active, m.router.Depth() > 1)
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		opts.Logger.Error().Err(err).Msg("tui exited with error")
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
