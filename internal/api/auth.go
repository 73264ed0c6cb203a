package api

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClient handles console sign-in and token introspection.
type AuthClient struct {
	client *Client
}

// NewAuthClient wraps the shared client for auth endpoints.
func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

type loginEnvelope struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Login exchanges credentials for a bearer token and installs it on
// the shared client so subsequent requests carry it.
func (c *AuthClient) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var envelope loginEnvelope
	if err := c.client.postJSON(ctx, "/admin/auth/login", body, &envelope); err != nil {
		return err
	}
	c.client.SetToken(envelope.Token)
	return nil
}

// TokenExpiry reads the expiry claim out of the installed token
// without verifying the signature; the console only uses it to warn
// the operator before the session lapses. Returns the zero time when
// no token is installed or it carries no expiry.
func (c *AuthClient) TokenExpiry() time.Time {
	if c.client.token == "" {
		return time.Time{}
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(c.client.token, claims); err != nil {
		return time.Time{}
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}
	}
	return expiry.Time
}

// StatsClient reads the dashboard statistics panel. Failures here are
// non-critical: callers log and render the panel empty rather than
// surfacing a banner.
type StatsClient struct {
	client *Client
}

// NewStatsClient wraps the shared client for the stats endpoint.
func NewStatsClient(client *Client) *StatsClient {
	return &StatsClient{client: client}
}

// Stats is the dashboard headline block.
type Stats struct {
	TotalEvents       int     `json:"totalEvents"`
	LiveEvents        int     `json:"liveEvents"`
	PendingEvents     int     `json:"pendingEvents"`
	TotalUsers        int     `json:"totalUsers"`
	OpenTickets       int     `json:"openTickets"`
	RevenueThisMonth  float64 `json:"revenueThisMonth"`
	RevenueCurrency   string  `json:"revenueCurrency"`
}

type statsEnvelope struct {
	Message string `json:"message"`
	Stats   Stats  `json:"stats"`
}

// Get fetches the headline numbers.
func (c *StatsClient) Get(ctx context.Context) (Stats, error) {
	var envelope statsEnvelope
	if err := c.client.get(ctx, "/admin/stats", nil, &envelope); err != nil {
		return Stats{}, err
	}
	return envelope.Stats, nil
}
