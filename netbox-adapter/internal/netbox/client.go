// Package netbox wraps the NetBox REST API. Authentication is a static
// token in the Authorization header with the "Token" scheme.
package netbox

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

// Options configures a Client.
type Options struct {
	URL       string // instance URL; /api is appended
	Token     string
	VerifySSL bool
}

// Client calls the NetBox REST API.
type Client struct {
	logger *zap.Logger
	api    *upstream.Client
}

// NewClient builds a Client for one NetBox instance.
func NewClient(logger *zap.Logger, opts Options) *Client {
	api := upstream.New(logger, upstream.Options{
		Name:    "netbox",
		BaseURL: strings.TrimSuffix(opts.URL, "/") + "/api",
		Tokens: &upstream.StaticTokenProvider{
			Header: "Authorization",
			Scheme: "Token",
			Value:  opts.Token,
		},
		Redactor:    redact.New(opts.Token),
		InsecureTLS: !opts.VerifySSL,
	})
	return &Client{logger: logger, api: api}
}

// Verify checks the token with a minimal site listing.
func (c *Client) Verify(ctx context.Context) error {
	_, err := c.api.Get(ctx, "/dcim/sites/", url.Values{"limit": []string{"1"}})
	return err
}

// GetDevices lists devices, optionally scoped to a site.
func (c *Client) GetDevices(ctx context.Context, limit, siteID int) (json.RawMessage, error) {
	q := limitQuery(limit)
	if siteID > 0 {
		q.Set("site_id", strconv.Itoa(siteID))
	}
	return c.api.Get(ctx, "/dcim/devices/", q)
}

// GetDevice fetches one device by ID.
func (c *Client) GetDevice(ctx context.Context, deviceID int) (json.RawMessage, error) {
	if deviceID <= 0 {
		return nil, &upstream.ArgumentError{Name: "device_id", Reason: "must be a positive integer"}
	}
	return c.api.Get(ctx, "/dcim/devices/"+strconv.Itoa(deviceID)+"/", nil)
}

// GetSites lists sites.
func (c *Client) GetSites(ctx context.Context, limit int) (json.RawMessage, error) {
	return c.api.Get(ctx, "/dcim/sites/", limitQuery(limit))
}

// GetIPAddresses lists IP addresses, optionally scoped to a VRF.
func (c *Client) GetIPAddresses(ctx context.Context, limit, vrfID int) (json.RawMessage, error) {
	q := limitQuery(limit)
	if vrfID > 0 {
		q.Set("vrf_id", strconv.Itoa(vrfID))
	}
	return c.api.Get(ctx, "/ipam/ip-addresses/", q)
}

// GetPrefixes lists prefixes, optionally scoped to a VRF.
func (c *Client) GetPrefixes(ctx context.Context, limit, vrfID int) (json.RawMessage, error) {
	q := limitQuery(limit)
	if vrfID > 0 {
		q.Set("vrf_id", strconv.Itoa(vrfID))
	}
	return c.api.Get(ctx, "/ipam/prefixes/", q)
}

// GetVLANs lists VLANs, optionally scoped to a site.
func (c *Client) GetVLANs(ctx context.Context, limit, siteID int) (json.RawMessage, error) {
	q := limitQuery(limit)
	if siteID > 0 {
		q.Set("site_id", strconv.Itoa(siteID))
	}
	return c.api.Get(ctx, "/ipam/vlans/", q)
}

// Search runs a free-text search ('q' parameter) against one endpoint such
// as "dcim/devices" or "ipam/prefixes".
func (c *Client) Search(ctx context.Context, endpoint, query string, limit int) (json.RawMessage, error) {
	if endpoint == "" {
		return nil, &upstream.ArgumentError{Name: "endpoint", Reason: "required"}
	}
	if query == "" {
		return nil, &upstream.ArgumentError{Name: "query", Reason: "required"}
	}
	q := limitQuery(limit)
	q.Set("q", query)
	return c.api.Get(ctx, "/"+strings.Trim(endpoint, "/")+"/", q)
}

// CreateIPAddress creates an IP address object.
func (c *Client) CreateIPAddress(ctx context.Context, address, status, description string) (json.RawMessage, error) {
	if address == "" {
		return nil, &upstream.ArgumentError{Name: "address", Reason: "required"}
	}
	if status == "" {
		status = "active"
	}
	return c.api.Post(ctx, "/ipam/ip-addresses/", map[string]any{
		"address":     address,
		"status":      status,
		"description": description,
	})
}

func limitQuery(limit int) url.Values {
	if limit <= 0 {
		limit = 50
	}
	return url.Values{"limit": []string{strconv.Itoa(limit)}}
}
