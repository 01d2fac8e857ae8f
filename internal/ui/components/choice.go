package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidscreen/internal/ui/theme"
)

// Choice picks one of a fixed set of labels. In row mode every label is
// shown side by side; in carousel mode only the current one is shown and
// left/right cycle through the list.
type Choice struct {
	Prompt   string
	Labels   []string
	Selected int // -1 until the user picks something
	Carousel bool
	Focused  bool
}

// NewChoice creates a row of labels with nothing selected.
func NewChoice(prompt string, labels []string) Choice {
	return Choice{Prompt: prompt, Labels: labels, Selected: -1}
}

// NewCarousel creates a cycling list with nothing selected.
func NewCarousel(prompt string, labels []string) Choice {
	c := NewChoice(prompt, labels)
	c.Carousel = true
	return c
}

// Update handles left/right and number keys. It reports whether the
// selection changed.
func (c Choice) Update(msg tea.Msg) (Choice, bool) {
	if !c.Focused || len(c.Labels) == 0 {
		return c, false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, false
	}

	prev := c.Selected
	switch key := kmsg.String(); key {
	case "left", "h":
		c.Selected = c.step(-1)
	case "right", "l", "space":
		c.Selected = c.step(1)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Labels) {
				c.Selected = i
			}
		}
	}
	return c, c.Selected != prev
}

func (c Choice) step(delta int) int {
	n := len(c.Labels)
	if c.Selected < 0 {
		if delta < 0 {
			return n - 1
		}
		return 0
	}
	if c.Carousel {
		return (c.Selected + delta + n) % n
	}
	i := c.Selected + delta
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Value returns the selected label, or "" when nothing is selected.
func (c Choice) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Labels) {
		return ""
	}
	return c.Labels[c.Selected]
}

// View renders the prompt and the options.
func (c Choice) View() string {
	var b strings.Builder
	b.WriteString(FieldPrompt(c.Prompt, c.Focused))
	b.WriteString("\n    ")

	if c.Carousel {
		label := "Choose..."
		style := theme.Hint
		if v := c.Value(); v != "" {
			label = v
			style = theme.Selected
		}
		arrow := lipgloss.NewStyle().Foreground(theme.TextDim)
		if c.Focused {
			arrow = arrow.Foreground(theme.Primary)
		}
		b.WriteString(arrow.Render("◂ ") + style.Render(label) + arrow.Render(" ▸"))
		return b.String()
	}

	parts := make([]string, len(c.Labels))
	for i, l := range c.Labels {
		if i == c.Selected {
			parts[i] = theme.Selected.Render("● " + l)
		} else {
			parts[i] = theme.Unselected.Render("○ " + l)
		}
	}
	b.WriteString(strings.Join(parts, "  "))
	return b.String()
}
