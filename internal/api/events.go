package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/evlive/admin-console/internal/models"
)

// EventsClient talks to the events resource.
type EventsClient struct {
	client *Client
}

// NewEventsClient wraps the shared client for event endpoints.
func NewEventsClient(client *Client) *EventsClient {
	return &EventsClient{client: client}
}

type eventEnvelope struct {
	Message string       `json:"message"`
	Event   models.Event `json:"event"`
}

// List fetches one page of events for the given query.
func (c *EventsClient) List(ctx context.Context, query models.ListQuery) (models.Page[models.Event], error) {
	var envelope listEnvelope[models.Event]
	if err := c.client.get(ctx, "/admin/events", queryValues(query), &envelope); err != nil {
		return models.Page[models.Event]{}, err
	}
	return envelope.page(), nil
}

// Get fetches a single event.
func (c *EventsClient) Get(ctx context.Context, id string) (models.Event, error) {
	var envelope eventEnvelope
	if err := c.client.get(ctx, "/admin/events/"+id, nil, &envelope); err != nil {
		return models.Event{}, err
	}
	return envelope.Event, nil
}

// Approve marks a pending or rejected event approved.
func (c *EventsClient) Approve(ctx context.Context, id string) error {
	return c.client.postJSON(ctx, "/admin/events/"+id+"/approve", nil, nil)
}

// Reject declines an event with a mandatory reason.
func (c *EventsClient) Reject(ctx context.Context, id, reason string) error {
	body := map[string]string{"reason": reason}
	return c.client.postJSON(ctx, "/admin/events/"+id+"/reject", body, nil)
}

// Unpublish pulls an approved event, recording why.
func (c *EventsClient) Unpublish(ctx context.Context, id, reason string) error {
	body := map[string]string{"reason": reason}
	return c.client.postJSON(ctx, "/admin/events/"+id+"/unpublish", body, nil)
}

// StartStream opens the event's live stream session.
func (c *EventsClient) StartStream(ctx context.Context, id string) error {
	return c.client.postJSON(ctx, "/admin/events/"+id+"/stream/start", nil, nil)
}

// EndStream closes the event's live stream session.
func (c *EventsClient) EndStream(ctx context.Context, id string) error {
	return c.client.postJSON(ctx, "/admin/events/"+id+"/stream/end", nil, nil)
}

// EventPayload carries the text fields of an event create or update.
// Prices travel JSON-stringified inside the multipart body alongside
// the file parts; the server parses them back out.
type EventPayload struct {
	Title       string
	Description string
	Category    string
	Date        time.Time
	TestDate    *time.Time
	LocationID  string
	Prices      []models.Price
}

// Upload is one optional binary part of an event submission.
type Upload struct {
	// Field is the multipart field name: banner, watermark, or trailer.
	Field string
	// Name is the uploaded file's name, used for the part header.
	Name string
	// Reader supplies the file contents.
	Reader io.Reader
}

// Create submits a new event as a multipart body with up to three
// file parts.
func (c *EventsClient) Create(ctx context.Context, payload EventPayload, uploads []Upload) (models.Event, error) {
	return c.submit(ctx, "POST", "/admin/events", payload, uploads)
}

// Update edits an existing event, re-uploading any changed media.
func (c *EventsClient) Update(ctx context.Context, id string, payload EventPayload, uploads []Upload) (models.Event, error) {
	return c.submit(ctx, "PUT", "/admin/events/"+id, payload, uploads)
}

func (c *EventsClient) submit(ctx context.Context, method, path string, payload EventPayload, uploads []Upload) (models.Event, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"title":       payload.Title,
		"description": payload.Description,
		"category":    payload.Category,
		"date":        payload.Date.Format(time.RFC3339),
		"locationId":  payload.LocationID,
	}
	if payload.TestDate != nil {
		fields["testDate"] = payload.TestDate.Format(time.RFC3339)
	}
	prices, err := json.Marshal(payload.Prices)
	if err != nil {
		return models.Event{}, fmt.Errorf("encode prices: %w", err)
	}
	fields["prices"] = string(prices)

	for key, val := range fields {
		if val == "" {
			continue
		}
		if err := writer.WriteField(key, val); err != nil {
			return models.Event{}, fmt.Errorf("write field %s: %w", key, err)
		}
	}

	for _, upload := range uploads {
		if upload.Reader == nil {
			continue
		}
		part, err := writer.CreateFormFile(upload.Field, upload.Name)
		if err != nil {
			return models.Event{}, fmt.Errorf("create part %s: %w", upload.Field, err)
		}
		if _, err := io.Copy(part, upload.Reader); err != nil {
			return models.Event{}, fmt.Errorf("copy part %s: %w", upload.Field, err)
		}
	}

	if err := writer.Close(); err != nil {
		return models.Event{}, fmt.Errorf("close multipart body: %w", err)
	}

	var envelope eventEnvelope
	if err := c.client.do(ctx, method, path, nil, body, writer.FormDataContentType(), &envelope); err != nil {
		return models.Event{}, err
	}
	return envelope.Event, nil
}
