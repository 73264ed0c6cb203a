package models

import "time"

// TransactionStatus is the settlement state of a ticket purchase.
type TransactionStatus string

const (
	TxnPending   TransactionStatus = "Pending"
	TxnCompleted TransactionStatus = "Completed"
	TxnFailed    TransactionStatus = "Failed"
	TxnRefunded  TransactionStatus = "Refunded"
)

// Transaction is a ticket purchase against an event.
type Transaction struct {
	ID        string            `json:"_id"`
	UserID    string            `json:"userId"`
	UserName  string            `json:"userName,omitempty"`
	EventID   string            `json:"eventId"`
	EventName string            `json:"eventName,omitempty"`
	Amount    float64           `json:"amount"`
	Currency  string            `json:"currency"`
	Status    TransactionStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}
