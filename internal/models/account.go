package models

import "time"

// AccountStatus applies to users, admins, and organisers alike.
type AccountStatus string

const (
	AccountActive   AccountStatus = "Active"
	AccountInactive AccountStatus = "Inactive"
)

// AccountRole distinguishes the three people-shaped resources. They
// share one record shape and one list screen configuration; only the
// endpoint and a few columns differ.
type AccountRole string

const (
	RoleUser      AccountRole = "user"
	RoleAdmin     AccountRole = "admin"
	RoleOrganiser AccountRole = "organiser"
)

// Account is a user, admin, or organiser record.
type Account struct {
	ID        string        `json:"_id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Role      AccountRole   `json:"role"`
	Status    AccountStatus `json:"status"`
	Locked    bool          `json:"locked"`
	CreatedAt time.Time     `json:"createdAt"`
	LastLogin *time.Time    `json:"lastLogin,omitempty"`
}
