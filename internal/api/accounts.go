package api

import (
	"context"

	"github.com/evlive/admin-console/internal/models"
)

// AccountsClient talks to one of the people-shaped resources. The
// three endpoints share request and response shapes; the role picks
// the path segment.
type AccountsClient struct {
	client *Client
	base   string
}

// NewAccountsClient wraps the shared client for the given role's
// endpoints (users, admins, or organisers).
func NewAccountsClient(client *Client, role models.AccountRole) *AccountsClient {
	base := "/admin/users"
	switch role {
	case models.RoleAdmin:
		base = "/admin/admins"
	case models.RoleOrganiser:
		base = "/admin/organisers"
	}
	return &AccountsClient{client: client, base: base}
}

type accountEnvelope struct {
	Message string         `json:"message"`
	Account models.Account `json:"account"`
}

// List fetches one page of accounts for the given query.
func (c *AccountsClient) List(ctx context.Context, query models.ListQuery) (models.Page[models.Account], error) {
	var envelope listEnvelope[models.Account]
	if err := c.client.get(ctx, c.base, queryValues(query), &envelope); err != nil {
		return models.Page[models.Account]{}, err
	}
	return envelope.page(), nil
}

// Get fetches a single account.
func (c *AccountsClient) Get(ctx context.Context, id string) (models.Account, error) {
	var envelope accountEnvelope
	if err := c.client.get(ctx, c.base+"/"+id, nil, &envelope); err != nil {
		return models.Account{}, err
	}
	return envelope.Account, nil
}

// Lock prevents the account from signing in.
func (c *AccountsClient) Lock(ctx context.Context, id string) error {
	return c.client.postJSON(ctx, c.base+"/"+id+"/lock", nil, nil)
}

// Unlock lifts a lock.
func (c *AccountsClient) Unlock(ctx context.Context, id string) error {
	return c.client.postJSON(ctx, c.base+"/"+id+"/unlock", nil, nil)
}

// Activate re-enables an inactive account.
func (c *AccountsClient) Activate(ctx context.Context, id string) error {
	return c.client.postJSON(ctx, c.base+"/"+id+"/activate", nil, nil)
}

// Deactivate disables an account, recording why.
func (c *AccountsClient) Deactivate(ctx context.Context, id, reason string) error {
	body := map[string]string{"reason": reason}
	return c.client.postJSON(ctx, c.base+"/"+id+"/deactivate", body, nil)
}
