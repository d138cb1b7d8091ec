// Package catc wraps the Cisco Catalyst Center intent API.
package catc

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/netops-mcp/adapters/internal/upstream"
	"github.com/netops-mcp/adapters/pkg/redact"
)

const (
	authPath   = "/dna/system/api/v1/auth/token"
	intentPath = "/dna/intent/api/v1"
)

// Client performs authenticated calls against the Catalyst Center intent
// API. Tokens are obtained from the system auth endpoint with basic auth and
// presented as X-Auth-Token; a rejected token is refreshed once per call by
// the underlying client.
type Client struct {
	api *upstream.Client
}

// Options configures a Catalyst Center client.
type Options struct {
	BaseURL   string
	Username  string
	Password  string
	VerifySSL bool
}

// NewClient constructs a Catalyst Center client.
func NewClient(logger *zap.Logger, opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	api := upstream.New(logger, upstream.Options{
		Name:    "catc",
		BaseURL: base + intentPath,
		Tokens: &upstream.LoginTokenProvider{
			AuthURL:    base + authPath,
			Username:   opts.Username,
			Password:   opts.Password,
			TokenField: "Token",
			Header:     "X-Auth-Token",
		},
		Redactor:    redact.New(opts.Password),
		InsecureTLS: !opts.VerifySSL,
	})
	return &Client{api: api}
}

// Verify confirms the stored credentials by priming the session token.
func (c *Client) Verify(ctx context.Context) error {
	return c.api.Authenticate(ctx)
}

// GetNetworkDevices lists network devices, optionally filtered by hostname
// and device type.
func (c *Client) GetNetworkDevices(ctx context.Context, hostname, deviceType string) (json.RawMessage, error) {
	q := url.Values{}
	if hostname != "" {
		q.Set("hostname", hostname)
	}
	if deviceType != "" {
		q.Set("type", deviceType)
	}
	return c.api.Get(ctx, "/network-device", q)
}

// GetDeviceDetail returns detailed information about one device.
func (c *Client) GetDeviceDetail(ctx context.Context, deviceID string) (json.RawMessage, error) {
	if deviceID == "" {
		return nil, &upstream.ArgumentError{Name: "device_id", Reason: "required"}
	}
	return c.api.Get(ctx, "/network-device/"+url.PathEscape(deviceID), nil)
}

// GetSites lists all sites.
func (c *Client) GetSites(ctx context.Context) (json.RawMessage, error) {
	return c.api.Get(ctx, "/site", nil)
}

// GetSiteTopology returns the topology for one site.
func (c *Client) GetSiteTopology(ctx context.Context, siteID string) (json.RawMessage, error) {
	if siteID == "" {
		return nil, &upstream.ArgumentError{Name: "site_id", Reason: "required"}
	}
	q := url.Values{}
	q.Set("siteId", siteID)
	return c.api.Get(ctx, "/topology/site-topology", q)
}

// GetClients returns client health information.
func (c *Client) GetClients(ctx context.Context, limit int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return c.api.Get(ctx, "/client-health", q)
}

// GetNetworkHealth returns overall network health metrics.
func (c *Client) GetNetworkHealth(ctx context.Context) (json.RawMessage, error) {
	return c.api.Get(ctx, "/network-health", nil)
}

// GetDeviceHealth returns health information for one device.
func (c *Client) GetDeviceHealth(ctx context.Context, deviceID string) (json.RawMessage, error) {
	if deviceID == "" {
		return nil, &upstream.ArgumentError{Name: "device_id", Reason: "required"}
	}
	return c.api.Get(ctx, "/device-health/"+url.PathEscape(deviceID), nil)
}

// GetIssues lists network issues, optionally filtered by priority and status.
func (c *Client) GetIssues(ctx context.Context, priority, status string) (json.RawMessage, error) {
	q := url.Values{}
	if priority != "" {
		q.Set("priority", priority)
	}
	if status != "" {
		q.Set("status", status)
	}
	return c.api.Get(ctx, "/issues", q)
}

// GetTemplates lists configuration templates.
func (c *Client) GetTemplates(ctx context.Context) (json.RawMessage, error) {
	return c.api.Get(ctx, "/template-programmer/template", nil)
}

// GetComplianceDetail returns compliance details for one device.
func (c *Client) GetComplianceDetail(ctx context.Context, deviceID string) (json.RawMessage, error) {
	if deviceID == "" {
		return nil, &upstream.ArgumentError{Name: "device_id", Reason: "required"}
	}
	return c.api.Get(ctx, "/compliance/"+url.PathEscape(deviceID)+"/detail", nil)
}

// GetEvents lists events, optionally filtered by category and severity.
func (c *Client) GetEvents(ctx context.Context, category, severity string, limit int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if category != "" {
		q.Set("category", category)
	}
	if severity != "" {
		q.Set("severity", severity)
	}
	return c.api.Get(ctx, "/events", q)
}
