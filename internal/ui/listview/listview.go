package listview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/evlive/admin-console/internal/models"
	"github.com/evlive/admin-console/internal/ui/widget"
)

// Column describes one table column. Render produces the cell text
// for a record; SortKey marks the column sortable and names the field
// sent to the server.
type Column[T any] struct {
	Title   string
	Width   int
	SortKey string
	Render  func(T) string
}

// EmptyState is what the table shows when a fetch returned no rows.
type EmptyState struct {
	Icon        string
	Message     string
	Description string
}

// State is the render-time snapshot a page hands to the table. The
// table is presentation-only: it never fetches, it only draws what it
// is given and the page routes interactions back into the store.
type State[T any] struct {
	Docs            []T
	Loading         bool
	Query           models.ListQuery
	Page            models.Page[T]
	Cursor          int
	ActionLoadingID string
	Width           int
}

// displayMode is the table body's mutually exclusive rendering state.
type displayMode int

const (
	modeLoading displayMode = iota
	modeEmpty
	modeRows
)

// Table renders the generic list view: header with sort indicators,
// one row per record, and a pagination footer. One Table instance
// serves every entity screen; the column set and empty state are data.
type Table[T any] struct {
	Columns []Column[T]
	Empty   EmptyState
	// RowID extracts the record identity used to match the
	// action-loading spinner to its row.
	RowID func(T) string

	theme widget.Theme
}

// NewTable builds a table over the given column definitions.
func NewTable[T any](columns []Column[T], empty EmptyState, rowID func(T) string, theme widget.Theme) Table[T] {
	return Table[T]{Columns: columns, Empty: empty, RowID: rowID, theme: theme}
}

func (t Table[T]) mode(state State[T]) displayMode {
	// Loading fully occludes the table even when stale rows exist.
	if state.Loading {
		return modeLoading
	}
	if len(state.Docs) == 0 {
		return modeEmpty
	}
	return modeRows
}

// View renders the table for the given snapshot.
func (t Table[T]) View(state State[T]) string {
	var b strings.Builder
	b.WriteString(t.renderHeader(state.Query))
	b.WriteString("\n")

	switch t.mode(state) {
	case modeLoading:
		b.WriteString(t.renderLoading())
	case modeEmpty:
		b.WriteString(t.renderEmpty())
	case modeRows:
		b.WriteString(t.renderRows(state))
	}

	if footer := t.renderFooter(state.Page); footer != "" {
		b.WriteString("\n")
		b.WriteString(footer)
	}
	return b.String()
}

func (t Table[T]) renderHeader(query models.ListQuery) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(t.theme.HeaderForeground)
	var cells []string
	for _, column := range t.Columns {
		title := column.Title
		if column.SortKey != "" && column.SortKey == query.SortBy {
			if query.SortOrder == models.SortAsc {
				title += " ▲"
			} else {
				title += " ▼"
			}
		}
		cells = append(cells, pad(headerStyle.Render(title), column.Width))
	}
	return strings.Join(cells, " ")
}

func (t Table[T]) renderLoading() string {
	style := lipgloss.NewStyle().Foreground(t.theme.FaintText).Padding(1, 0)
	return style.Render("Loading…")
}

func (t Table[T]) renderEmpty() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(t.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(t.theme.FaintText)
	lines := []string{
		"",
		"  " + t.Empty.Icon + "  " + title.Render(t.Empty.Message),
		"      " + faint.Render(t.Empty.Description),
		"",
	}
	return strings.Join(lines, "\n")
}

func (t Table[T]) renderRows(state State[T]) string {
	selected := lipgloss.NewStyle().
		Background(t.theme.SelectedBackground).
		Foreground(t.theme.SelectedForeground)

	var rows []string
	for index, record := range state.Docs {
		var cells []string
		for _, column := range t.Columns {
			cells = append(cells, pad(column.Render(record), column.Width))
		}
		line := strings.Join(cells, " ")

		if t.RowID != nil && t.RowID(record) == state.ActionLoadingID && state.ActionLoadingID != "" {
			line += " ⟳"
		}
		if index == state.Cursor {
			line = selected.Render(line)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

// renderFooter draws the "Showing X to Y of Z results" line with
// paging hints. Hidden entirely when everything fits on one page.
func (t Table[T]) renderFooter(page models.Page[T]) string {
	if page.TotalPages <= 1 {
		return ""
	}
	faint := lipgloss.NewStyle().Foreground(t.theme.FaintText)
	active := lipgloss.NewStyle().Foreground(t.theme.NormalText)

	prev := "◀ prev"
	if page.HasPrev() {
		prev = active.Render(prev)
	} else {
		prev = faint.Render(prev)
	}
	next := "next ▶"
	if page.HasNext() {
		next = active.Render(next)
	} else {
		next = faint.Render(next)
	}

	return faint.Render(page.RangeLabel()) + "   " + prev + "  " + next
}

// Badge renders a status chip in the given semantic color. Status to
// color mapping lives on the theme so every screen colors the same
// meaning the same way.
func Badge(text string, color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render("● " + text)
}

// pad fits styled text into a fixed-width cell, truncating with an
// ellipsis when it overflows.
func pad(text string, width int) string {
	visible := ansi.StringWidth(text)
	if visible > width {
		return ansi.Truncate(text, width-1, "…")
	}
	return text + strings.Repeat(" ", width-visible)
}
