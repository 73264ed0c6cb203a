package widget

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/evlive/admin-console/internal/models"
)

// rangePhase tracks which bound the next pick sets.
type rangePhase int

const (
	selectingStart rangePhase = iota
	selectingEnd
)

// ApplyMode selects when the picker notifies its owner. Immediate
// pickers report every pick as it happens; deferred pickers hold a
// local draft until Commit, which is what a filter bar with an
// explicit "Search" control wants.
type ApplyMode int

const (
	ApplyImmediate ApplyMode = iota
	ApplyDeferred
)

// DateRangePicker is a month-calendar widget producing a DateRange.
// Picking runs a small state machine: the first pick sets the start
// and clears any previous end; the second pick sets the end, swapping
// the two if the operator picked out of order, so the start never
// follows the end. A completed range starts over on the next pick.
type DateRangePicker struct {
	Mode ApplyMode

	phase  rangePhase
	draft  models.DateRange
	cursor time.Time // the highlighted day
	month  time.Time // first day of the displayed month
	theme  Theme
}

// NewDateRangePicker builds a picker showing the month around now.
func NewDateRangePicker(mode ApplyMode, now time.Time, theme Theme) DateRangePicker {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return DateRangePicker{
		Mode:   mode,
		cursor: day,
		month:  time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		theme:  theme,
	}
}

// Range returns the current draft range.
func (p *DateRangePicker) Range() models.DateRange { return p.draft }

// SetRange seeds the draft, e.g. when reopening a committed filter.
func (p *DateRangePicker) SetRange(r models.DateRange) {
	p.draft = r.Normalized()
	p.phase = selectingStart
	if r.Start != nil {
		p.cursor = *r.Start
		p.month = time.Date(r.Start.Year(), r.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

// MoveCursor shifts the highlighted day, flipping months at the edges.
func (p *DateRangePicker) MoveCursor(days int) {
	p.cursor = p.cursor.AddDate(0, 0, days)
	p.month = time.Date(p.cursor.Year(), p.cursor.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth advances the displayed month.
func (p *DateRangePicker) NextMonth() {
	p.month = p.month.AddDate(0, 1, 0)
	p.cursor = p.month
}

// PrevMonth rewinds the displayed month.
func (p *DateRangePicker) PrevMonth() {
	p.month = p.month.AddDate(0, -1, 0)
	p.cursor = p.month
}

// Pick selects the highlighted day. Returns the completed range and
// true when this pick closed a range (the second pick), which is the
// moment an immediate-apply owner should propagate the value.
func (p *DateRangePicker) Pick() (models.DateRange, bool) {
	day := p.cursor

	if p.phase == selectingStart || p.draft.Start == nil {
		p.draft = models.DateRange{Start: &day}
		p.phase = selectingEnd
		if p.Mode == ApplyImmediate {
			// Half-open range already narrows the filter.
			return p.draft, true
		}
		return p.draft, false
	}

	end := day
	p.draft.End = &end
	p.draft = p.draft.Normalized()
	p.phase = selectingStart
	return p.draft, true
}

// Clear drops the draft and starts over.
func (p *DateRangePicker) Clear() {
	p.draft = models.DateRange{}
	p.phase = selectingStart
}

// Commit finalizes a deferred draft, returning the normalized range.
func (p *DateRangePicker) Commit() models.DateRange {
	p.draft = p.draft.Normalized()
	p.phase = selectingStart
	return p.draft
}

func (p *DateRangePicker) inRange(day time.Time) bool {
	if p.draft.Start == nil {
		return false
	}
	if day.Before(*p.draft.Start) {
		return false
	}
	if p.draft.End == nil {
		return day.Equal(*p.draft.Start)
	}
	return !day.After(*p.draft.End)
}

// Render draws the month grid. The selected range gets the selection
// background; the cursor day is marked with brackets.
func (p *DateRangePicker) Render() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(p.theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(p.theme.FaintText)
	normal := lipgloss.NewStyle().Foreground(p.theme.NormalText)
	ranged := lipgloss.NewStyle().
		Background(p.theme.SelectedBackground).
		Foreground(p.theme.SelectedForeground)

	var b strings.Builder
	b.WriteString(header.Render(p.month.Format("January 2006")) + "\n")
	b.WriteString(faint.Render("Su Mo Tu We Th Fr Sa") + "\n")

	// Leading blanks up to the month's first weekday.
	offset := int(p.month.Weekday())
	b.WriteString(strings.Repeat("   ", offset))

	daysInMonth := p.month.AddDate(0, 1, -1).Day()
	for dayNum := 1; dayNum <= daysInMonth; dayNum++ {
		day := p.month.AddDate(0, 0, dayNum-1)
		cell := fmt.Sprintf("%2d", dayNum)

		switch {
		case day.Equal(p.cursor):
			cell = header.Render(cell)
		case p.inRange(day):
			cell = ranged.Render(cell)
		default:
			cell = normal.Render(cell)
		}
		b.WriteString(cell + " ")

		if (offset+dayNum)%7 == 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(faint.Render(p.rangeLabel()))
	return b.String()
}

func (p *DateRangePicker) rangeLabel() string {
	format := func(t *time.Time) string {
		if t == nil {
			return "…"
		}
		return t.Format("2006-01-02")
	}
	if p.draft.IsZero() {
		return "no range selected"
	}
	return format(p.draft.Start) + " → " + format(p.draft.End)
}
