// Package meraki wraps the Meraki Dashboard API with bearer-key auth and
// explicit null normalization on the listing endpoints that need it.
package meraki

import (
	"context"
	"encoding/json"
	"net/url"

	"go.uber.org/zap"

	"github.com/netops-mcp/adapters/internal/rate"
	"github.com/netops-mcp/adapters/internal/upstream"
	"github.com/netops-mcp/adapters/pkg/redact"
)

// Options configures a Client.
type Options struct {
	BaseURL string // e.g. https://api.meraki.com/api/v1
	APIKey  string
}

// Client calls the Meraki Dashboard API.
type Client struct {
	logger *zap.Logger
	api    *upstream.Client
}

// NewClient builds a Client for the Dashboard API.
func NewClient(logger *zap.Logger, opts Options) *Client {
	api := upstream.New(logger, upstream.Options{
		Name:    "meraki",
		BaseURL: opts.BaseURL,
		Tokens: &upstream.StaticTokenProvider{
			Header: "Authorization",
			Scheme: "Bearer",
			Value:  opts.APIKey,
		},
		Headers: map[string]string{
			"User-Agent": "Network-MCP-Server/1.0",
		},
		// The Dashboard API enforces 10 req/s per organization.
		Limiter:  rate.New(rate.Config{RequestsPerSecond: 10, Burst: 10}),
		Redactor: redact.New(opts.APIKey),
	})
	return &Client{logger: logger, api: api}
}

// Verify checks the API key by listing accessible organizations.
func (c *Client) Verify(ctx context.Context) error {
	_, err := c.GetOrganizations(ctx)
	return err
}

// GetOrganizations lists the organizations the API key can access.
func (c *Client) GetOrganizations(ctx context.Context) (json.RawMessage, error) {
	return c.api.Get(ctx, "/organizations", nil)
}

// GetOrganizationNetworks lists the networks in an organization, with null
// string fields and null tags normalized.
func (c *Client) GetOrganizationNetworks(ctx context.Context, orgID string) (json.RawMessage, error) {
	if orgID == "" {
		return nil, &upstream.ArgumentError{Name: "organization_id", Reason: "required"}
	}
	body, err := c.api.Get(ctx, "/organizations/"+url.PathEscape(orgID)+"/networks", nil)
	if err != nil {
		return nil, err
	}
	return NormalizeNetworks(body), nil
}

// GetOrganizationDevices lists the devices in an organization, normalized.
func (c *Client) GetOrganizationDevices(ctx context.Context, orgID string) (json.RawMessage, error) {
	if orgID == "" {
		return nil, &upstream.ArgumentError{Name: "organization_id", Reason: "required"}
	}
	body, err := c.api.Get(ctx, "/organizations/"+url.PathEscape(orgID)+"/devices", nil)
	if err != nil {
		return nil, err
	}
	return NormalizeDevices(body), nil
}

// GetOrganizationFirmwareUpgrades lists firmware upgrades across an
// organization, normalized including the nested network/version objects.
func (c *Client) GetOrganizationFirmwareUpgrades(ctx context.Context, orgID string) (json.RawMessage, error) {
	if orgID == "" {
		return nil, &upstream.ArgumentError{Name: "organization_id", Reason: "required"}
	}
	body, err := c.api.Get(ctx, "/organizations/"+url.PathEscape(orgID)+"/firmware/upgrades", nil)
	if err != nil {
		return nil, err
	}
	return NormalizeFirmwareUpgrades(body), nil
}

// GetOrganizationLicensesOverview returns the license overview for an
// organization.
func (c *Client) GetOrganizationLicensesOverview(ctx context.Context, orgID string) (json.RawMessage, error) {
	if orgID == "" {
		return nil, &upstream.ArgumentError{Name: "organization_id", Reason: "required"}
	}
	return c.api.Get(ctx, "/organizations/"+url.PathEscape(orgID)+"/licenses/overview", nil)
}

// UpdateNetworkFirmwareUpgrades schedules or reconfigures firmware upgrades
// on one network. The settings map is forwarded as the PUT body unchanged.
func (c *Client) UpdateNetworkFirmwareUpgrades(ctx context.Context, networkID string, settings map[string]any) (json.RawMessage, error) {
	if networkID == "" {
		return nil, &upstream.ArgumentError{Name: "network_id", Reason: "required"}
	}
	if len(settings) == 0 {
		return nil, &upstream.ArgumentError{Name: "settings", Reason: "required"}
	}
	return c.api.Put(ctx, "/networks/"+url.PathEscape(networkID)+"/firmwareUpgrades", settings)
}
