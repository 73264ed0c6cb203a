package api

import (
	"context"

	"github.com/evlive/admin-console/internal/models"
)

// TransactionsClient talks to the transactions resource.
type TransactionsClient struct {
	client *Client
}

// NewTransactionsClient wraps the shared client for transaction endpoints.
func NewTransactionsClient(client *Client) *TransactionsClient {
	return &TransactionsClient{client: client}
}

type transactionEnvelope struct {
	Message     string             `json:"message"`
	Transaction models.Transaction `json:"transaction"`
}

// List fetches one page of transactions.
func (c *TransactionsClient) List(ctx context.Context, query models.ListQuery) (models.Page[models.Transaction], error) {
	var envelope listEnvelope[models.Transaction]
	if err := c.client.get(ctx, "/admin/transactions", queryValues(query), &envelope); err != nil {
		return models.Page[models.Transaction]{}, err
	}
	return envelope.page(), nil
}

// Get fetches a single transaction.
func (c *TransactionsClient) Get(ctx context.Context, id string) (models.Transaction, error) {
	var envelope transactionEnvelope
	if err := c.client.get(ctx, "/admin/transactions/"+id, nil, &envelope); err != nil {
		return models.Transaction{}, err
	}
	return envelope.Transaction, nil
}

// Refund reverses a completed transaction, recording why.
func (c *TransactionsClient) Refund(ctx context.Context, id, reason string) error {
	body := map[string]string{"reason": reason}
	return c.client.postJSON(ctx, "/admin/transactions/"+id+"/refund", body, nil)
}

// LocationsClient talks to the venues resource.
type LocationsClient struct {
	client *Client
}

// NewLocationsClient wraps the shared client for location endpoints.
func NewLocationsClient(client *Client) *LocationsClient {
	return &LocationsClient{client: client}
}

type locationEnvelope struct {
	Message  string          `json:"message"`
	Location models.Location `json:"location"`
}

// List fetches one page of locations.
func (c *LocationsClient) List(ctx context.Context, query models.ListQuery) (models.Page[models.Location], error) {
	var envelope listEnvelope[models.Location]
	if err := c.client.get(ctx, "/admin/locations", queryValues(query), &envelope); err != nil {
		return models.Page[models.Location]{}, err
	}
	return envelope.page(), nil
}

// LocationPayload carries the fields of a venue create request.
type LocationPayload struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Create adds a venue.
func (c *LocationsClient) Create(ctx context.Context, payload LocationPayload) (models.Location, error) {
	var envelope locationEnvelope
	if err := c.client.postJSON(ctx, "/admin/locations", payload, &envelope); err != nil {
		return models.Location{}, err
	}
	return envelope.Location, nil
}

// Delete removes a venue.
func (c *LocationsClient) Delete(ctx context.Context, id string) error {
	return c.client.delete(ctx, "/admin/locations/"+id, nil)
}

// ActivitiesClient reads the audit log. List-only.
type ActivitiesClient struct {
	client *Client
}

// NewActivitiesClient wraps the shared client for the audit log.
func NewActivitiesClient(client *Client) *ActivitiesClient {
	return &ActivitiesClient{client: client}
}

// List fetches one page of audit-log rows.
func (c *ActivitiesClient) List(ctx context.Context, query models.ListQuery) (models.Page[models.Activity], error) {
	var envelope listEnvelope[models.Activity]
	if err := c.client.get(ctx, "/admin/activities", queryValues(query), &envelope); err != nil {
		return models.Page[models.Activity]{}, err
	}
	return envelope.page(), nil
}

// SupportClient talks to the support ticket resource.
type SupportClient struct {
	client *Client
}

// NewSupportClient wraps the shared client for support endpoints.
func NewSupportClient(client *Client) *SupportClient {
	return &SupportClient{client: client}
}

type ticketEnvelope struct {
	Message string               `json:"message"`
	Ticket  models.SupportTicket `json:"ticket"`
}

// List fetches one page of support tickets.
func (c *SupportClient) List(ctx context.Context, query models.ListQuery) (models.Page[models.SupportTicket], error) {
	var envelope listEnvelope[models.SupportTicket]
	if err := c.client.get(ctx, "/admin/support", queryValues(query), &envelope); err != nil {
		return models.Page[models.SupportTicket]{}, err
	}
	return envelope.page(), nil
}

// Get fetches a single ticket.
func (c *SupportClient) Get(ctx context.Context, id string) (models.SupportTicket, error) {
	var envelope ticketEnvelope
	if err := c.client.get(ctx, "/admin/support/"+id, nil, &envelope); err != nil {
		return models.SupportTicket{}, err
	}
	return envelope.Ticket, nil
}

// Resolve closes out the investigation with a resolution note.
func (c *SupportClient) Resolve(ctx context.Context, id, resolution string) error {
	body := map[string]string{"resolution": resolution}
	return c.client.postJSON(ctx, "/admin/support/"+id+"/resolve", body, nil)
}

// Close archives a resolved ticket.
func (c *SupportClient) Close(ctx context.Context, id string) error {
	return c.client.postJSON(ctx, "/admin/support/"+id+"/close", nil, nil)
}
