package widget

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/evlive/admin-console/internal/models"
)

// Theme is the console's color palette. All colors are lipgloss ANSI
// 256-color codes for broad terminal compatibility. Status colors are
// semantic and shared across entity screens: the same green means
// "good" for a live event, an active account, and a completed
// transaction.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	StatusGood    lipgloss.Color
	StatusWarn    lipgloss.Color
	StatusBad     lipgloss.Color
	StatusNeutral lipgloss.Color
	StatusInfo    lipgloss.Color

	SuccessBackground lipgloss.Color
	ErrorBackground   lipgloss.Color
	OverlayBackground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	StatusGood:    lipgloss.Color("114"), // green
	StatusWarn:    lipgloss.Color("220"), // amber
	StatusBad:     lipgloss.Color("196"), // red
	StatusNeutral: lipgloss.Color("245"), // gray
	StatusInfo:    lipgloss.Color("75"),  // blue

	SuccessBackground: lipgloss.Color("22"),  // dark green
	ErrorBackground:   lipgloss.Color("52"),  // dark red
	OverlayBackground: lipgloss.Color("237"), // slightly lighter than terminal
}

// EventStatusColor maps the time-derived event lifecycle to a color.
// Unknown values fall back to faint text.
func (theme Theme) EventStatusColor(status models.EventStatus) lipgloss.Color {
	switch status {
	case models.EventLive:
		return theme.StatusGood
	case models.EventUpcoming:
		return theme.StatusInfo
	case models.EventPast:
		return theme.StatusNeutral
	default:
		return theme.FaintText
	}
}

// AdminStatusColor maps the moderation state to a color.
func (theme Theme) AdminStatusColor(status models.AdminStatus) lipgloss.Color {
	switch status {
	case models.AdminApproved:
		return theme.StatusGood
	case models.AdminPending:
		return theme.StatusWarn
	case models.AdminRejected:
		return theme.StatusBad
	default:
		return theme.FaintText
	}
}

// AccountStatusColor maps account state to a color. Locked overrides
// the active/inactive coloring.
func (theme Theme) AccountStatusColor(status models.AccountStatus, locked bool) lipgloss.Color {
	if locked {
		return theme.StatusBad
	}
	switch status {
	case models.AccountActive:
		return theme.StatusGood
	case models.AccountInactive:
		return theme.StatusNeutral
	default:
		return theme.FaintText
	}
}

// TransactionStatusColor maps settlement state to a color.
func (theme Theme) TransactionStatusColor(status models.TransactionStatus) lipgloss.Color {
	switch status {
	case models.TxnCompleted:
		return theme.StatusGood
	case models.TxnPending:
		return theme.StatusWarn
	case models.TxnFailed:
		return theme.StatusBad
	case models.TxnRefunded:
		return theme.StatusInfo
	default:
		return theme.FaintText
	}
}

// TicketStatusColor maps support workflow state to a color.
func (theme Theme) TicketStatusColor(status models.TicketStatus) lipgloss.Color {
	switch status {
	case models.TicketOpen:
		return theme.StatusWarn
	case models.TicketInProgress:
		return theme.StatusInfo
	case models.TicketResolved:
		return theme.StatusGood
	case models.TicketClosed:
		return theme.StatusNeutral
	default:
		return theme.FaintText
	}
}
