package screening

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/kidscreen/internal/questionnaire"
	"github.com/abhisek/kidscreen/internal/screen"
	"github.com/abhisek/kidscreen/internal/session"
	"github.com/abhisek/kidscreen/internal/ui/components"
	"github.com/abhisek/kidscreen/internal/ui/layout"
)

const spinnerInterval = 100 * time.Millisecond

// widget is one focusable field on the current page.
type widget struct {
	field  questionnaire.Field
	input  *components.TextInput
	choice *components.Choice
}

// ScreeningScreen walks the user through the questionnaire pages and shows
// the prediction.
type ScreeningScreen struct {
	sess    *session.Session
	logger  zerolog.Logger
	widgets []widget
	buttons components.ButtonRow
	actions []questionnaire.Action
	focus   int // index into widgets; len(widgets) is the button row
	frame   int
	shown   questionnaire.Step
}

var _ screen.Screen = (*ScreeningScreen)(nil)
var _ screen.KeyHintProvider = (*ScreeningScreen)(nil)
var _ screen.StatusProvider = (*ScreeningScreen)(nil)

// New creates a ScreeningScreen driving sess.
func New(sess *session.Session, logger zerolog.Logger) *ScreeningScreen {
	s := &ScreeningScreen{sess: sess, logger: logger}
	s.loadPage()
	s.focusCmd()
	return s
}

func (s *ScreeningScreen) Init() tea.Cmd {
	return s.focusCmd()
}

func (s *ScreeningScreen) Title() string {
	return "Screening"
}

// Status shows that a submission is in flight.
func (s *ScreeningScreen) Status() string {
	if s.sess.Pending() {
		return "submitting"
	}
	return ""
}

func (s *ScreeningScreen) KeyHints() []layout.KeyHint {
	if s.onButtons() {
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose button"},
			{Key: "Enter", Description: "Select"},
			{Key: "Tab", Description: "Fields"},
			{Key: "Esc", Description: "Home"},
		}
	}
	hints := []layout.KeyHint{{Key: "Tab/↓", Description: "Next"}, {Key: "Shift+Tab/↑", Description: "Previous"}}
	if w := s.widgets[s.focus]; w.choice != nil {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Choose"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "0-9", Description: "Type"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *ScreeningScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case predictionMsg:
		return s.handlePrediction(msg)

	case spinnerTickMsg:
		if msg.Session != s.sess.ID() || !s.sess.Pending() {
			return s, nil
		}
		s.frame++
		return s, spinnerTick(msg.Session)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and other input housekeeping.
	if w := s.focused(); w != nil && w.input != nil {
		var cmd tea.Cmd
		*w.input, cmd = w.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ScreeningScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return s, s.moveFocus(1)
	case "shift+tab", "up":
		return s, s.moveFocus(-1)
	case "enter":
		if s.onButtons() {
			return s, s.activate(s.actions[s.buttons.Selected])
		}
		return s, s.moveFocus(1)
	}

	if s.onButtons() {
		s.buttons = s.buttons.Update(msg)
		return s, nil
	}

	w := s.focused()
	switch {
	case w.input != nil:
		var cmd tea.Cmd
		*w.input, cmd = w.input.Update(msg)
		s.sess.SetField(w.field.Name, w.input.Value())
		return s, cmd
	case w.choice != nil:
		var changed bool
		*w.choice, changed = w.choice.Update(msg)
		if changed {
			s.sess.SetField(w.field.Name, w.field.Options[w.choice.Selected].Value)
		}
	}
	return s, nil
}

// activate runs a page action.
func (s *ScreeningScreen) activate(a questionnaire.Action) tea.Cmd {
	switch a {
	case questionnaire.ActionBack:
		s.sess.Retreat()
	case questionnaire.ActionNext:
		s.sess.Advance()
	case questionnaire.ActionRetake:
		s.sess.Restart()
	case questionnaire.ActionFinish:
		return s.submit()
	}
	s.loadPage()
	return s.focusCmd()
}

// submit starts a prediction request off the UI loop.
func (s *ScreeningScreen) submit() tea.Cmd {
	ticket, err := s.sess.BeginSubmit()
	if err != nil {
		s.logger.Debug().Err(err).Msg("submit ignored")
		return nil
	}
	s.logger.Info().
		Int("answered", ticket.Answers().Answered()).
		Msg("submitting answers")

	sess := s.sess
	send := func() tea.Msg {
		label, err := sess.Send(context.Background(), ticket)
		return predictionMsg{Ticket: ticket, Label: label, Err: err}
	}
	s.frame = 0
	return tea.Batch(send, spinnerTick(sess.ID()))
}

func (s *ScreeningScreen) handlePrediction(msg predictionMsg) (screen.Screen, tea.Cmd) {
	// A screening left with esc can still deliver its result here.
	if msg.Ticket.Session() != s.sess.ID() {
		s.logger.Debug().Msg("ignoring prediction for another screening")
		return s, nil
	}
	if !s.sess.Resolve(msg.Ticket, msg.Label, msg.Err) {
		return s, nil
	}
	if msg.Err != nil {
		s.logger.Warn().Err(msg.Err).Msg("prediction failed")
	} else {
		s.logger.Info().Str("prediction", msg.Label).Msg("prediction received")
	}
	if s.sess.Step() != s.shown {
		s.loadPage()
		return s, s.focusCmd()
	}
	return s, nil
}

// loadPage builds the widgets for the session's current step, seeded with
// the answers already given.
func (s *ScreeningScreen) loadPage() {
	step := s.sess.Step()
	page, _ := questionnaire.PageFor(step)

	s.widgets = s.widgets[:0]
	for _, name := range page.Fields {
		f, ok := questionnaire.Lookup(name)
		if !ok {
			continue
		}
		value := s.sess.Get(name)
		w := widget{field: f}

		switch f.Kind {
		case questionnaire.KindNumeric:
			ti := components.NewTextInput(f.Prompt, "e.g. 24", true, 3)
			ti.SetValue(value)
			w.input = &ti
		default:
			labels := make([]string, len(f.Options))
			for i, o := range f.Options {
				labels[i] = o.Label
			}
			c := components.NewChoice(f.Prompt, labels)
			if f.Kind == questionnaire.KindSelect {
				c = components.NewCarousel(f.Prompt, labels)
			}
			c.Selected = f.OptionIndex(value)
			w.choice = &c
		}
		s.widgets = append(s.widgets, w)
	}

	s.actions = questionnaire.ActionsFor(step)
	labels := make([]string, len(s.actions))
	for i, a := range s.actions {
		labels[i] = a.Label()
	}
	s.buttons = components.NewButtonRow(labels)
	s.focus = 0
	s.shown = step
}

func (s *ScreeningScreen) onButtons() bool {
	return s.focus >= len(s.widgets)
}

func (s *ScreeningScreen) focused() *widget {
	if s.onButtons() {
		return nil
	}
	return &s.widgets[s.focus]
}

// moveFocus cycles focus over the fields and the button row.
func (s *ScreeningScreen) moveFocus(delta int) tea.Cmd {
	n := len(s.widgets) + 1
	s.focus = (s.focus + delta + n) % n
	return s.focusCmd()
}

// focusCmd syncs the focused flags with s.focus.
func (s *ScreeningScreen) focusCmd() tea.Cmd {
	var cmd tea.Cmd
	for i := range s.widgets {
		w := &s.widgets[i]
		on := i == s.focus
		switch {
		case w.input != nil && on:
			cmd = w.input.Focus()
		case w.input != nil:
			w.input.Blur()
		case w.choice != nil:
			w.choice.Focused = on
		}
	}
	s.buttons.Focused = s.onButtons()
	return cmd
}

func spinnerTick(session string) tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg{Session: session, At: t}
	})
}
