package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidscreen/internal/questionnaire"
	"github.com/abhisek/kidscreen/internal/router"
	"github.com/abhisek/kidscreen/internal/screen"
	"github.com/abhisek/kidscreen/internal/store"
	"github.com/abhisek/kidscreen/internal/ui/layout"
	"github.com/abhisek/kidscreen/internal/ui/theme"
)

// PageSize is how many submissions the screen loads.
const PageSize = 50

type historyLoadedMsg struct {
	Submissions []store.Submission
	Err         error
}

// HistoryScreen lists past submissions, newest first.
type HistoryScreen struct {
	repo        store.SubmissionRepo
	submissions []store.Submission
	selected    int
	expanded    map[int]bool
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.SubmissionRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		subs, err := s.repo.List(context.Background(), store.QueryOpts{Limit: PageSize})
		return historyLoadedMsg{Submissions: subs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Past Results"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.submissions = msg.Submissions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.submissions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading past results...")
	}
	if len(s.submissions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No results yet. Start a screening from the home menu.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sub := range s.submissions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		result := sub.Prediction
		resultStyle := lipgloss.NewStyle().Foreground(theme.Accent)
		if !sub.Success {
			result = "failed"
			resultStyle = resultStyle.Foreground(theme.Error)
		}

		line := fmt.Sprintf("%s%s  %s answered  %dms  ",
			prefix,
			sub.Timestamp.Local().Format("Jan 02, 2006 15:04"),
			answeredCount(sub.Answers),
			sub.LatencyMs,
		)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)+resultStyle.Render(result)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(renderAnswers(sub, width))
		}
	}

	return b.String()
}

func answeredCount(answers map[string]string) string {
	n := 0
	for _, name := range questionnaire.FieldNames() {
		if answers[name] != "" {
			n++
		}
	}
	return fmt.Sprintf("%d/%d", n, len(questionnaire.FieldNames()))
}

func renderAnswers(sub store.Submission, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	for _, f := range questionnaire.Fields() {
		v := sub.Answers[f.Name]
		if v == "" {
			v = "-"
		} else {
			v = f.LabelFor(v)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			dim.Render(fmt.Sprintf("    %-10s %s", f.Name, v))))
		b.WriteString("\n")
	}
	if sub.ErrorMessage != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render("    "+sub.ErrorMessage)))
		b.WriteString("\n")
	}
	return b.String()
}
