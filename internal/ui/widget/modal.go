package widget

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evlive/admin-console/internal/models"
)

// ConfirmResultMsg is delivered when the operator confirms a modal.
type ConfirmResultMsg struct {
	Action   models.ActionKind
	TargetID string
	Reason   string
}

// ConfirmModal is a yes/no gate around a destructive or state-changing
// row action. When the action demands a reason, the confirm control
// stays disabled until the drafted reason is non-empty; cancelling
// discards the draft.
type ConfirmModal struct {
	Action      models.ActionKind
	TargetID    string
	TargetLabel string
	Prompt      string
	NeedsReason bool

	reason []rune
	open   bool
	theme  Theme
}

// NewConfirmModal opens a confirmation for the given row action.
func NewConfirmModal(action models.Action, targetID, targetLabel, prompt string, theme Theme) ConfirmModal {
	return ConfirmModal{
		Action:      action.Kind,
		TargetID:    targetID,
		TargetLabel: targetLabel,
		Prompt:      prompt,
		NeedsReason: action.NeedsReason,
		open:        true,
		theme:       theme,
	}
}

// Open reports whether the modal is showing.
func (m *ConfirmModal) Open() bool { return m.open }

// Reason returns the drafted reason text.
func (m *ConfirmModal) Reason() string { return string(m.reason) }

// CanConfirm reports whether the confirm control is enabled.
func (m *ConfirmModal) CanConfirm() bool {
	if !m.NeedsReason {
		return true
	}
	return strings.TrimSpace(string(m.reason)) != ""
}

// Update routes a key press into the modal. Enter confirms when
// allowed, escape cancels, anything else edits the reason draft. The
// returned command carries the ConfirmResultMsg on confirmation.
func (m *ConfirmModal) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.open = false
		m.reason = nil
		return nil
	case tea.KeyEnter:
		if !m.CanConfirm() {
			return nil
		}
		m.open = false
		result := ConfirmResultMsg{
			Action:   m.Action,
			TargetID: m.TargetID,
			Reason:   strings.TrimSpace(string(m.reason)),
		}
		m.reason = nil
		return func() tea.Msg { return result }
	case tea.KeyBackspace:
		if m.NeedsReason && len(m.reason) > 0 {
			m.reason = m.reason[:len(m.reason)-1]
		}
		return nil
	case tea.KeyRunes, tea.KeySpace:
		if m.NeedsReason {
			m.reason = append(m.reason, msg.Runes...)
		}
		return nil
	}
	return nil
}

// Render draws the modal box for overlay placement.
func (m *ConfirmModal) Render() string {
	if !m.open {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	var body strings.Builder
	body.WriteString(titleStyle.Render(m.Prompt))
	body.WriteString("\n\n")
	body.WriteString(faint.Render(m.TargetLabel))
	body.WriteString("\n")

	if m.NeedsReason {
		inputStyle := lipgloss.NewStyle().
			Foreground(m.theme.NormalText).
			Background(m.theme.SelectedBackground).
			Width(44)
		body.WriteString("\n" + faint.Render("Reason (required):") + "\n")
		body.WriteString(inputStyle.Render(string(m.reason)+"█") + "\n")
	}

	confirm := "[ Confirm ]"
	confirmStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.StatusGood)
	if !m.CanConfirm() {
		confirmStyle = lipgloss.NewStyle().Foreground(m.theme.FaintText)
	}
	cancelStyle := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	body.WriteString("\n" + confirmStyle.Render(confirm) + "  " + cancelStyle.Render("[ Cancel (esc) ]"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderColor).
		Background(m.theme.OverlayBackground).
		Padding(1, 2)
	return boxStyle.Render(body.String())
}
