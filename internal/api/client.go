package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evlive/admin-console/internal/models"
	appErrors "github.com/evlive/admin-console/pkg/errors"
)

// Client is the shared HTTP layer under every resource client. It
// injects the bearer token and a correlation ID, applies read/write
// timeouts by method, logs each request, and maps transport and
// non-2xx failures into typed errors carrying the server's message.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	token        string
	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeouts overrides the read (GET) and write (mutation) timeouts.
func WithTimeouts(read, write time.Duration) Option {
	return func(c *Client) {
		if read > 0 {
			c.readTimeout = read
		}
		if write > 0 {
			c.writeTimeout = write
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient swaps the underlying transport, used by tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// NewClient builds the shared client for the given API base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		// No global timeout; per-request timeouts come from context.
		httpClient:   &http.Client{},
		readTimeout:  10 * time.Second,
		writeTimeout: 30 * time.Second,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token after a login or refresh.
func (c *Client) SetToken(token string) { c.token = token }

// listEnvelope is the wire shape of every paginated list response.
type listEnvelope[T any] struct {
	Message     string `json:"message"`
	Docs        []T    `json:"docs"`
	TotalDocs   int    `json:"totalDocs"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	Limit       int    `json:"limit"`
}

func (e listEnvelope[T]) page() models.Page[T] {
	return models.Page[T]{
		Docs:        e.Docs,
		TotalDocs:   e.TotalDocs,
		TotalPages:  e.TotalPages,
		CurrentPage: e.CurrentPage,
		Limit:       e.Limit,
	}
}

// messageEnvelope is the minimal shape of every mutation response and
// of error bodies.
type messageEnvelope struct {
	Message string `json:"message"`
}

// queryValues shapes a ListQuery into request query parameters.
// Filters holding the "All" sentinel or the empty string are omitted
// so the server applies its unfiltered default; date bounds go out as
// ISO date strings.
func queryValues(q models.ListQuery) url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("limit", strconv.Itoa(q.Limit))
	for key, val := range q.Filters {
		if val == "" || val == models.FilterAll {
			continue
		}
		values.Set(key, val)
	}
	if q.DateRange.Start != nil {
		values.Set("startDate", q.DateRange.Start.Format("2006-01-02"))
	}
	if q.DateRange.End != nil {
		values.Set("endDate", q.DateRange.End.Format("2006-01-02"))
	}
	if q.SortBy != "" {
		values.Set("sortBy", q.SortBy)
		values.Set("sortOrder", string(q.SortOrder))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	return values
}

// get issues a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// postJSON issues a POST with a JSON body.
func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, body, out)
}

// putJSON issues a PUT with a JSON body.
func (c *Client) putJSON(ctx context.Context, path string, body any, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, body, out)
}

// delete issues a DELETE.
func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, path, nil, reader, "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	timeout := c.readTimeout
	if method != http.MethodGet {
		timeout = c.writeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api_request_failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api_request_completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "unexpected response from server")
	}
	return nil
}

func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return appErrors.Clone(appErrors.ErrTimeout, "")
	}
	return appErrors.Clone(appErrors.ErrUnavailable, "")
}

// decodeError surfaces the server-provided message when the body
// carries one, falling back to a generic string otherwise.
func decodeError(resp *http.Response) error {
	var envelope messageEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Message != "" {
		return appErrors.New("API_ERROR", resp.StatusCode, envelope.Message)
	}
	return appErrors.New("API_ERROR", resp.StatusCode, fmt.Sprintf("request failed with status %d", resp.StatusCode))
}
