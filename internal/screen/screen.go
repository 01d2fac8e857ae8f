package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kidscreen/internal/ui/layout"
)

// Screen is one page of the TUI. The app owns the header and footer; a
// screen renders only the space between them.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep on the stack.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that replace the header status
// while they are active. An empty status keeps the app's default.
type StatusProvider interface {
	Status() string
}

// Hints returns the footer hints for s. Screens without their own get
// back-and-quit hints when nested and menu hints at the root.
func Hints(s Screen, nested bool) []layout.KeyHint {
	if p, ok := s.(KeyHintProvider); ok {
		if hints := p.KeyHints(); hints != nil {
			return hints
		}
	}
	if nested {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Status returns the header status for s, or fallback.
func Status(s Screen, fallback string) string {
	if p, ok := s.(StatusProvider); ok {
		if st := p.Status(); st != "" {
			return st
		}
	}
	return fallback
}
