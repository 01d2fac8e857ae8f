package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidscreen/internal/ui/theme"
)

// StepBar is a segmented progress bar, one segment per questionnaire step.
type StepBar struct {
	Current int // zero-based
	Steps   int
	Percent float64
	Width   int
}

// NewStepBar creates a bar for step current of steps, filled to percent.
func NewStepBar(current, steps int, percent float64, width int) StepBar {
	return StepBar{Current: current, Steps: max(steps, 1), Percent: percent, Width: width}
}

// Label is the "Step N of M" caption.
func (b StepBar) Label() string {
	return fmt.Sprintf("Step %d of %d", min(b.Current+1, b.Steps), b.Steps)
}

// View renders the caption, the segments and the percentage.
func (b StepBar) View() string {
	pct := max(0, min(b.Percent, 1))
	caption := lipgloss.NewStyle().Foreground(theme.TextDim).Render(b.Label()) + "  "
	suffix := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %3d%%", int(pct*100)))

	avail := b.Width - lipgloss.Width(caption) - lipgloss.Width(suffix) - (b.Steps - 1)
	seg := max(avail/b.Steps, 2)
	filled := int(float64(seg*b.Steps) * pct)

	parts := make([]string, b.Steps)
	for i := range parts {
		on := max(0, min(filled-i*seg, seg))
		style := theme.ProgressEmpty
		if i == b.Current && on < seg {
			style = theme.ProgressCurrent
		}
		parts[i] = theme.ProgressFilled.Render(strings.Repeat(" ", on)) +
			style.Render(strings.Repeat(" ", seg-on))
	}
	return caption + strings.Join(parts, " ") + suffix
}
