// Package ise wraps the Cisco ISE ERS API. ERS has no session endpoint;
// every request carries basic auth, so a 401 simply means the credentials
// are wrong.
package ise

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

const maxPageSize = 100

// Options configures a Client.
type Options struct {
	Host      string // hostname or IP; an https:// prefix is tolerated
	Username  string
	Password  string
	Version   string
	VerifySSL bool
}

// Client calls the ISE ERS config API.
type Client struct {
	logger *zap.Logger
	api    *upstream.Client
}

// NewClient builds a Client for the given ISE deployment.
func NewClient(logger *zap.Logger, opts Options) *Client {
	host := strings.TrimPrefix(strings.TrimPrefix(opts.Host, "https://"), "http://")
	host = strings.TrimSuffix(host, "/")

	api := upstream.New(logger, upstream.Options{
		Name:    "ise",
		BaseURL: "https://" + host + "/ers/config",
		Tokens: &upstream.BasicAuthProvider{
			Username: opts.Username,
			Password: opts.Password,
		},
		Headers: map[string]string{
			"User-Agent": "Network-MCP-Server/1.0",
		},
		Redactor:    redact.New(opts.Password),
		InsecureTLS: !opts.VerifySSL,
	})
	return &Client{logger: logger, api: api}
}

// Verify checks connectivity and credentials with a minimal device listing.
func (c *Client) Verify(ctx context.Context) error {
	_, err := c.api.Get(ctx, "/networkdevice", url.Values{"size": []string{"1"}})
	return err
}

// List fetches one page of an ERS resource. The filter expression uses the
// ERS 'field.OPERATION.value' syntax; size is capped at 100 as the API
// enforces.
func (c *Client) List(ctx context.Context, ep Endpoint, filter string, page, size int) (json.RawMessage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if filter != "" {
		q.Set("filter", filter)
	}
	return c.api.Get(ctx, "/"+ep.Path, q)
}

// SearchEndpointByMAC looks up a single endpoint by its MAC address.
func (c *Client) SearchEndpointByMAC(ctx context.Context, mac string) (json.RawMessage, error) {
	if mac == "" {
		return nil, &upstream.ArgumentError{Name: "mac_address", Reason: "required"}
	}
	q := url.Values{"filter": []string{"mac.EQUALS." + mac}}
	return c.api.Get(ctx, "/endpoint", q)
}

// SearchUserSessions lists the active sessions for one user.
func (c *Client) SearchUserSessions(ctx context.Context, username string) (json.RawMessage, error) {
	if username == "" {
		return nil, &upstream.ArgumentError{Name: "username", Reason: "required"}
	}
	q := url.Values{"filter": []string{"userName.EQUALS." + username}}
	return c.api.Get(ctx, "/session", q)
}

// ComplianceStatus couples an endpoint lookup with the fields a compliance
// check reads from it.
type ComplianceStatus struct {
	MACAddress   string          `json:"mac_address"`
	EndpointData json.RawMessage `json:"endpoint_data"`
	Note         string          `json:"compliance_status"`
}

// DeviceComplianceStatus fetches endpoint data for a MAC and annotates which
// fields carry the compliance signal.
func (c *Client) DeviceComplianceStatus(ctx context.Context, mac string) (*ComplianceStatus, error) {
	data, err := c.SearchEndpointByMAC(ctx, mac)
	if err != nil {
		return nil, err
	}
	return &ComplianceStatus{
		MACAddress:   mac,
		EndpointData: data,
		Note:         "Retrieved endpoint data - check profiledBy and groupId fields for compliance",
	}, nil
}
