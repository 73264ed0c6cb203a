package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(actions []Action) []ActionKind {
	out := make([]ActionKind, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.Kind)
	}
	return out
}

func find(t *testing.T, actions []Action, kind ActionKind) Action {
	t.Helper()
	for _, a := range actions {
		if a.Kind == kind {
			return a
		}
	}
	t.Fatalf("action %q not offered", kind)
	return Action{}
}

func TestEventActionsByModerationState(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  []ActionKind
	}{
		{
			name:  "pending gets approve and reject",
			event: Event{Status: EventUpcoming, AdminStatus: AdminPending},
			want:  []ActionKind{ActionView, ActionApprove, ActionReject, ActionEdit},
		},
		{
			name:  "approved upcoming can start a stream",
			event: Event{Status: EventUpcoming, AdminStatus: AdminApproved},
			want:  []ActionKind{ActionView, ActionStartStream, ActionUnpublish, ActionEdit},
		},
		{
			name:  "approved live stream can be ended",
			event: Event{Status: EventLive, AdminStatus: AdminApproved, StreamLive: true},
			want:  []ActionKind{ActionView, ActionEndStream, ActionUnpublish, ActionEdit},
		},
		{
			name:  "approved past event cannot stream",
			event: Event{Status: EventPast, AdminStatus: AdminApproved},
			want:  []ActionKind{ActionView, ActionUnpublish, ActionEdit},
		},
		{
			name:  "rejected can be re-approved",
			event: Event{Status: EventUpcoming, AdminStatus: AdminRejected},
			want:  []ActionKind{ActionView, ActionApprove, ActionEdit},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kinds(EventActions(tt.event)))
		})
	}
}

func TestEventRejectDemandsReason(t *testing.T) {
	actions := EventActions(Event{AdminStatus: AdminPending})
	reject := find(t, actions, ActionReject)
	assert.True(t, reject.Destructive)
	assert.True(t, reject.NeedsReason)

	unpublish := find(t, EventActions(Event{AdminStatus: AdminApproved}), ActionUnpublish)
	assert.True(t, unpublish.NeedsReason)
}

func TestAccountActionsAreOrthogonalToggles(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		want    []ActionKind
	}{
		{
			name:    "active unlocked",
			account: Account{Status: AccountActive},
			want:    []ActionKind{ActionView, ActionLock, ActionDeactivate},
		},
		{
			name:    "active locked",
			account: Account{Status: AccountActive, Locked: true},
			want:    []ActionKind{ActionView, ActionUnlock, ActionDeactivate},
		},
		{
			name:    "inactive unlocked",
			account: Account{Status: AccountInactive},
			want:    []ActionKind{ActionView, ActionLock, ActionActivate},
		},
		{
			name:    "inactive locked",
			account: Account{Status: AccountInactive, Locked: true},
			want:    []ActionKind{ActionView, ActionUnlock, ActionActivate},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kinds(AccountActions(tt.account)))
		})
	}
}

func TestTransactionRefundOnlyWhenCompleted(t *testing.T) {
	for _, status := range []TransactionStatus{TxnPending, TxnFailed, TxnRefunded} {
		actions := TransactionActions(Transaction{Status: status})
		assert.Equal(t, []ActionKind{ActionView}, kinds(actions), "status %s", status)
	}

	actions := TransactionActions(Transaction{Status: TxnCompleted})
	require.Equal(t, []ActionKind{ActionView, ActionRefund}, kinds(actions))
	assert.True(t, find(t, actions, ActionRefund).NeedsReason)
}

func TestSupportActionsFollowWorkflow(t *testing.T) {
	for _, status := range []TicketStatus{TicketOpen, TicketInProgress} {
		actions := SupportActions(SupportTicket{Status: status})
		assert.Equal(t, []ActionKind{ActionView, ActionResolve}, kinds(actions), "status %s", status)
	}

	resolved := SupportActions(SupportTicket{Status: TicketResolved})
	assert.Equal(t, []ActionKind{ActionView, ActionClose}, kinds(resolved))

	closed := SupportActions(SupportTicket{Status: TicketClosed})
	assert.Equal(t, []ActionKind{ActionView}, kinds(closed))
}

func TestIsFree(t *testing.T) {
	assert.True(t, Event{}.IsFree())
	assert.True(t, Event{Prices: []Price{{Currency: "USD", Amount: 0}}}.IsFree())
	assert.False(t, Event{Prices: []Price{{Currency: "USD", Amount: 0}, {Currency: "EUR", Amount: 10}}}.IsFree())
}
