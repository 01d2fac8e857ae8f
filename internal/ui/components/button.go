package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kidscreen/internal/ui/theme"
)

// ButtonRow is a horizontal set of buttons, one of which is highlighted.
type ButtonRow struct {
	Labels   []string
	Selected int
	Focused  bool
}

// NewButtonRow creates a row with the last button highlighted, so the
// forward action is the default.
func NewButtonRow(labels []string) ButtonRow {
	return ButtonRow{Labels: labels, Selected: len(labels) - 1}
}

// Update moves the highlight with left/right while focused.
func (b ButtonRow) Update(msg tea.Msg) ButtonRow {
	if !b.Focused {
		return b
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "left", "h":
			if b.Selected > 0 {
				b.Selected--
			}
		case "right", "l":
			if b.Selected < len(b.Labels)-1 {
				b.Selected++
			}
		}
	}
	return b
}

// View renders the row. Without focus no button is highlighted.
func (b ButtonRow) View() string {
	parts := make([]string, len(b.Labels))
	for i, l := range b.Labels {
		if b.Focused && i == b.Selected {
			parts[i] = theme.ButtonActive.Render("▸ " + l)
		} else {
			parts[i] = theme.ButtonInactive.Render(l)
		}
	}
	return strings.Join(parts, "  ")
}
