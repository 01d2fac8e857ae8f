package screening

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidscreen/internal/questionnaire"
	"github.com/abhisek/kidscreen/internal/session"
	"github.com/abhisek/kidscreen/internal/ui/components"
	"github.com/abhisek/kidscreen/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *ScreeningScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	page, _ := questionnaire.PageFor(s.shown)

	var b strings.Builder

	b.WriteString(theme.Title.Width(cw).Render(questionnaire.AppTitle))
	b.WriteString("\n")
	b.WriteString(components.NewStepBar(
		int(s.shown), int(questionnaire.LastStep)+1, questionnaire.Progress(s.shown), cw,
	).View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(page.Title))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(page.Subtitle))
	b.WriteString("\n\n")

	if s.shown == questionnaire.StepResult {
		b.WriteString(s.renderResult(cw))
		b.WriteString("\n\n")
	}

	for _, w := range s.widgets {
		if w.input != nil {
			b.WriteString(w.input.View())
		} else {
			b.WriteString(w.choice.View())
		}
		b.WriteString("\n\n")
	}

	b.WriteString(s.buttons.View())

	if s.sess.Pending() {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(
			spinnerFrames[s.frame%len(spinnerFrames)] + " Checking your answers..."))
	}

	block := lipgloss.NewStyle().Width(cw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, block)
}

func (s *ScreeningScreen) renderResult(cw int) string {
	prediction, ok := s.sess.Prediction()
	var line string
	switch {
	case !ok:
		line = theme.Hint.Render("No result yet.")
	case prediction == session.ErrorPlaceholder:
		line = theme.Failure.Render(prediction)
	default:
		line = theme.Result.Render(prediction)
	}
	body := line + "\n\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw-6).Render(questionnaire.Disclaimer)
	return components.Card(body, cw)
}
