package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidscreen/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for page sections so
// cards and buttons line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 30 {
		w = 30
	}
	return w
}

// FieldPrompt renders a field prompt, marked when the field has focus.
func FieldPrompt(prompt string, focused bool) string {
	if focused {
		return theme.FocusedPrompt.Render("▸ " + prompt)
	}
	return theme.Prompt.Render("  " + prompt)
}

// Card wraps content in a rounded card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.Width(cw).Render(content)
}

// Center places content in the middle of a width x height area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
