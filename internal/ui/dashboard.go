package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/evlive/admin-console/internal/api"
	"github.com/evlive/admin-console/internal/ui/widget"
)

// Dashboard is the landing screen: headline numbers over the whole
// platform. A failed stats fetch is logged and the panel renders
// empty; it never blocks the console.
type Dashboard struct {
	client *api.StatsClient
	stats  api.Stats
	loaded bool
	theme  widget.Theme
	logger *zap.Logger
	width  int
}

// NewDashboard builds the stats screen.
func NewDashboard(client *api.StatsClient, theme widget.Theme, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{client: client, theme: theme, logger: logger}
}

// Init issues the stats fetch.
func (d *Dashboard) Init() tea.Cmd {
	client := d.client
	return func() tea.Msg {
		stats, err := client.Get(context.Background())
		return statsMsg{Stats: stats, Err: err}
	}
}

// SetSize records the layout box.
func (d *Dashboard) SetSize(width, _ int) { d.width = width }

// Update handles the stats result.
func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case statsMsg:
		if msg.Err != nil {
			d.logger.Warn("stats fetch failed", zap.Error(msg.Err))
			return nil
		}
		d.stats = msg.Stats
		d.loaded = true
	case tea.KeyMsg:
		if msg.String() == "r" {
			return d.Init()
		}
	}
	return nil
}

// View renders the headline tiles.
func (d *Dashboard) View() string {
	faint := lipgloss.NewStyle().Foreground(d.theme.FaintText)
	if !d.loaded {
		return faint.Render("Statistics unavailable. Press r to retry.")
	}

	tile := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(d.theme.BorderColor).
		Padding(0, 2).
		Width(20)
	value := lipgloss.NewStyle().Foreground(d.theme.NormalText).Bold(true)

	render := func(label, number string) string {
		return tile.Render(value.Render(number) + "\n" + faint.Render(label))
	}

	tiles := []string{
		render("Total events", fmt.Sprintf("%d", d.stats.TotalEvents)),
		render("Live now", fmt.Sprintf("%d", d.stats.LiveEvents)),
		render("Pending review", fmt.Sprintf("%d", d.stats.PendingEvents)),
		render("Users", fmt.Sprintf("%d", d.stats.TotalUsers)),
		render("Open tickets", fmt.Sprintf("%d", d.stats.OpenTickets)),
		render("Revenue (month)", fmt.Sprintf("%s %.2f", d.stats.RevenueCurrency, d.stats.RevenueThisMonth)),
	}

	perRow := 3
	if d.width > 0 && d.width/22 > 0 {
		perRow = d.width / 22
		if perRow < 1 {
			perRow = 1
		}
	}

	var rows []string
	for start := 0; start < len(tiles); start += perRow {
		end := start + perRow
		if end > len(tiles) {
			end = len(tiles)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles[start:end]...))
	}
	return strings.Join(rows, "\n")
}
