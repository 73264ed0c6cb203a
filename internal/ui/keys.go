package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the console's key bindings. Navigation is
// vim-flavored with arrow keys alongside.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	NextTab key.Binding
	PrevTab key.Binding

	Search    key.Binding
	DateRange key.Binding
	Refresh   key.Binding
	ClearAll  key.Binding

	Actions key.Binding
	New     key.Binding
	SortKey key.Binding
	SortDir key.Binding

	ExportCSV key.Binding
	ExportPDF key.Binding

	Dismiss key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "previous page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next page"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next screen"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous screen"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	DateRange: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "date range"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	ClearAll: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear filters"),
	),
	Actions: key.NewBinding(
		key.WithKeys("enter", "a"),
		key.WithHelp("enter", "row actions"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "create"),
	),
	SortKey: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort column"),
	),
	SortDir: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "sort order"),
	),
	ExportCSV: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export csv"),
	),
	ExportPDF: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "export pdf"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "dismiss"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
