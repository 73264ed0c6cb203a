package widget

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BannerKind distinguishes the two transient notice styles.
type BannerKind int

const (
	BannerSuccess BannerKind = iota
	BannerError
)

// BannerExpiredMsg is delivered when a success banner's timer fires.
// The revision lets the model ignore timers from banners that were
// already replaced.
type BannerExpiredMsg struct {
	Revision int
}

// Banner is a transient notice line. Success banners dismiss
// themselves after a fixed timeout; error banners stay until the
// operator dismisses them. Both close on demand.
type Banner struct {
	Kind    BannerKind
	Text    string
	visible bool
	rev     int
}

// ShowSuccess displays a success notice and returns the command that
// schedules its self-dismissal.
func (b *Banner) ShowSuccess(text string, after time.Duration) tea.Cmd {
	b.Kind = BannerSuccess
	b.Text = text
	b.visible = true
	b.rev++
	rev := b.rev
	return tea.Tick(after, func(time.Time) tea.Msg {
		return BannerExpiredMsg{Revision: rev}
	})
}

// ShowError displays an error notice. It stays until Dismiss.
func (b *Banner) ShowError(text string) {
	b.Kind = BannerError
	b.Text = text
	b.visible = true
	b.rev++
}

// Expire hides the banner if the timer belongs to the banner currently
// showing. Error banners never expire.
func (b *Banner) Expire(msg BannerExpiredMsg) {
	if msg.Revision == b.rev && b.Kind == BannerSuccess {
		b.visible = false
	}
}

// Dismiss hides the banner immediately.
func (b *Banner) Dismiss() { b.visible = false }

// Visible reports whether the banner renders.
func (b *Banner) Visible() bool { return b.visible }

// Render draws the banner line at the given width.
func (b *Banner) Render(theme Theme, width int) string {
	if !b.visible {
		return ""
	}
	background := theme.SuccessBackground
	if b.Kind == BannerError {
		background = theme.ErrorBackground
	}
	style := lipgloss.NewStyle().
		Background(background).
		Foreground(theme.SelectedForeground).
		Width(width).
		Padding(0, 1)
	text := b.Text
	if b.Kind == BannerError {
		text += "  (esc to dismiss)"
	}
	return style.Render(text)
}
