package widget

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/evlive/admin-console/internal/models"
)

// Dropdown renders a floating action menu anchored at a screen
// position. While open it captures all keyboard input (up/down to
// navigate, enter to select, escape to dismiss); a mouse click outside
// its bounds dismisses it, mirroring a browser's document-level
// outside-click listener.
type Dropdown struct {
	Actions []models.Action
	Cursor  int
	AnchorX int
	AnchorY int
	// RowID is the record whose menu this is.
	RowID string
	// RowLabel is a human-readable handle on the record, used in
	// confirmation prompts.
	RowLabel string
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (d *Dropdown) MoveUp() {
	d.Cursor--
	if d.Cursor < 0 {
		d.Cursor = len(d.Actions) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (d *Dropdown) MoveDown() {
	d.Cursor++
	if d.Cursor >= len(d.Actions) {
		d.Cursor = 0
	}
}

// Selected returns the currently highlighted action, or the zero
// Action when the menu is empty or the cursor is out of bounds.
func (d *Dropdown) Selected() models.Action {
	if d.Cursor < 0 || d.Cursor >= len(d.Actions) {
		return models.Action{}
	}
	return d.Actions[d.Cursor]
}

// Width returns the rendered width in columns, used for mouse
// hit-testing.
func (d *Dropdown) Width() int {
	maxLabel := 0
	for _, action := range d.Actions {
		w := ansi.StringWidth(action.Label)
		if w > maxLabel {
			maxLabel = w
		}
	}
	return 3 + maxLabel + 2
}

// Contains reports whether the screen coordinate falls inside the
// dropdown's bounding box.
func (d *Dropdown) Contains(x, y int) bool {
	if y < d.AnchorY || y >= d.AnchorY+len(d.Actions) {
		return false
	}
	return x >= d.AnchorX && x < d.AnchorX+d.Width()
}

// ActionAtY returns the index of the action on screen row y, or -1.
func (d *Dropdown) ActionAtY(y int) int {
	index := y - d.AnchorY
	if index < 0 || index >= len(d.Actions) {
		return -1
	}
	return index
}

// Render produces the dropdown lines for overlay splicing. Every line
// has the same visible width and a solid background so the menu reads
// as a layer above the table.
func (d *Dropdown) Render(theme Theme) []string {
	totalWidth := d.Width()
	innerWidth := totalWidth - 2

	background := lipgloss.NewStyle().Background(theme.OverlayBackground)
	selected := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	destructive := lipgloss.NewStyle().
		Background(theme.OverlayBackground).
		Foreground(theme.StatusBad)

	var lines []string
	for index, action := range d.Actions {
		marker := " "
		if index == d.Cursor {
			marker = ">"
		}
		content := marker + " " + action.Label
		pad := innerWidth - ansi.StringWidth(content)
		if pad < 0 {
			pad = 0
		}
		padded := " " + content + strings.Repeat(" ", pad) + " "

		style := background
		if index == d.Cursor {
			style = selected
		} else if action.Destructive {
			style = destructive
		}
		lines = append(lines, style.Render(padded))
	}
	return lines
}
