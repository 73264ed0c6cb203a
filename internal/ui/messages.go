package ui

import (
	"github.com/evlive/admin-console/internal/api"
	"github.com/evlive/admin-console/internal/models"
)

// pageDataMsg carries a completed list fetch back into the event loop.
// PageName routes it to the owning screen; Seq lets the store discard
// it when a newer fetch has since been issued.
type pageDataMsg[T any] struct {
	PageName string
	Seq      uint64
	Result   models.Page[T]
	Err      error
}

// detailMsg carries a completed single-record fetch.
type detailMsg[T any] struct {
	PageName string
	Record   T
	Err      error
}

// mutationDoneMsg reports a finished row action. On success the screen
// shows the message and re-fetches its current page to reconcile.
type mutationDoneMsg struct {
	PageName string
	Success  string
	Err      error
}

// searchDebounceMsg fires when a search keystroke's settle timer
// elapses. Rev identifies the keystroke; the screen ignores stale ones.
type searchDebounceMsg struct {
	PageName string
	Rev      int
}

// submitDoneMsg reports a finished form submission.
type submitDoneMsg struct {
	PageName string
	Success  string
	Err      error
}

// statsMsg carries the dashboard statistics panel data. Failures are
// non-critical: the dashboard logs and renders the panel empty.
type statsMsg struct {
	Stats api.Stats
	Err   error
}

// openEditorMsg asks the root model to open the form screen for a
// record, or a blank form when ID is empty.
type openEditorMsg struct {
	PageName string
	ID       string
}

// exportDoneMsg reports a table export written to disk.
type exportDoneMsg struct {
	PageName string
	Path     string
	Err      error
}
