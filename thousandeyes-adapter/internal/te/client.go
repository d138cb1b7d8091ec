// Package te wraps the ThousandEyes v7 API. All calls are bearer-token
// authenticated GETs; time windows use either a relative window string
// ("1h", "7d") or an absolute from/to pair.
package te

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/netops-mcp/adapters/internal/upstream"
	"github.com/netops-mcp/adapters/pkg/redact"
)

// Options configures a Client.
type Options struct {
	BaseURL string // e.g. https://api.thousandeyes.com/v7
	Token   string
}

// Window selects a result time range. Window takes precedence over the
// From/To pair when both are set, matching the API's own precedence.
type Window struct {
	Window string // relative, e.g. "1h", "7d"
	From   string // ISO timestamp
	To     string // ISO timestamp
}

func (w Window) apply(q url.Values) {
	if w.Window != "" {
		q.Set("window", w.Window)
		return
	}
	if w.From != "" {
		q.Set("from", w.From)
	}
	if w.To != "" {
		q.Set("to", w.To)
	}
}

// Client calls the ThousandEyes v7 API.
type Client struct {
	logger *zap.Logger
	api    *upstream.Client
}

// NewClient builds a Client for the v7 API.
func NewClient(logger *zap.Logger, opts Options) *Client {
	api := upstream.New(logger, upstream.Options{
		Name:    "thousandeyes",
		BaseURL: opts.BaseURL,
		Tokens: &upstream.StaticTokenProvider{
			Header: "Authorization",
			Scheme: "Bearer",
			Value:  opts.Token,
		},
		Redactor: redact.New(opts.Token),
	})
	return &Client{logger: logger, api: api}
}

// Verify checks the token by listing account groups.
func (c *Client) Verify(ctx context.Context) error {
	_, err := c.GetAccountGroups(ctx)
	return err
}

// ListTests lists configured tests, optionally scoped to an account group
// and filtered by name or type.
func (c *Client) ListTests(ctx context.Context, aid int, nameContains, testType string) (json.RawMessage, error) {
	q := url.Values{}
	setAID(q, aid)
	if nameContains != "" {
		q.Set("testName", nameContains)
	}
	if testType != "" {
		q.Set("type", testType)
	}
	return c.api.Get(ctx, "/tests", q)
}

// ListAgents lists agents, optionally filtered by agent type.
func (c *Client) ListAgents(ctx context.Context, agentTypes string, aid int) (json.RawMessage, error) {
	q := url.Values{}
	if agentTypes != "" {
		q.Set("agentTypes", agentTypes)
	}
	setAID(q, aid)
	return c.api.Get(ctx, "/agents", q)
}

// GetTestResults fetches results of one test for a result type such as
// "network" or "http-server".
func (c *Client) GetTestResults(ctx context.Context, testID, testType string, win Window, aid, agentID int) (json.RawMessage, error) {
	if testID == "" {
		return nil, &upstream.ArgumentError{Name: "test_id", Reason: "required"}
	}
	if testType == "" {
		return nil, &upstream.ArgumentError{Name: "test_type", Reason: "required"}
	}
	q := url.Values{}
	win.apply(q)
	setAID(q, aid)
	if agentID > 0 {
		q.Set("agentId", strconv.Itoa(agentID))
	}
	return c.api.Get(ctx, "/test-results/"+url.PathEscape(testID)+"/"+url.PathEscape(testType), q)
}

// GetPathVis fetches path visualization results for one test.
func (c *Client) GetPathVis(ctx context.Context, testID string, win Window, aid, agentID int, direction string) (json.RawMessage, error) {
	if testID == "" {
		return nil, &upstream.ArgumentError{Name: "test_id", Reason: "required"}
	}
	q := url.Values{}
	win.apply(q)
	setAID(q, aid)
	if agentID > 0 {
		q.Set("agentId", strconv.Itoa(agentID))
	}
	if direction != "" {
		q.Set("direction", direction)
	}
	return c.api.Get(ctx, "/test-results/"+url.PathEscape(testID)+"/path-vis", q)
}

// ListDashboards lists dashboards, optionally filtered by title.
func (c *Client) ListDashboards(ctx context.Context, aid int, titleContains string) (json.RawMessage, error) {
	q := url.Values{}
	setAID(q, aid)
	if titleContains != "" {
		q.Set("title", titleContains)
	}
	return c.api.Get(ctx, "/dashboards", q)
}

// GetDashboard fetches one dashboard definition.
func (c *Client) GetDashboard(ctx context.Context, dashboardID string, aid int) (json.RawMessage, error) {
	if dashboardID == "" {
		return nil, &upstream.ArgumentError{Name: "dashboard_id", Reason: "required"}
	}
	q := url.Values{}
	setAID(q, aid)
	return c.api.Get(ctx, "/dashboards/"+url.PathEscape(dashboardID), q)
}

// GetDashboardWidget fetches the data behind one dashboard widget.
func (c *Client) GetDashboardWidget(ctx context.Context, dashboardID, widgetID string, win Window, aid int) (json.RawMessage, error) {
	if dashboardID == "" {
		return nil, &upstream.ArgumentError{Name: "dashboard_id", Reason: "required"}
	}
	if widgetID == "" {
		return nil, &upstream.ArgumentError{Name: "widget_id", Reason: "required"}
	}
	q := url.Values{}
	win.apply(q)
	setAID(q, aid)
	return c.api.Get(ctx, "/dashboards/"+url.PathEscape(dashboardID)+"/widgets/"+url.PathEscape(widgetID), q)
}

// GetUsers lists the users visible to the token.
func (c *Client) GetUsers(ctx context.Context) (json.RawMessage, error) {
	return c.api.Get(ctx, "/users", nil)
}

// GetAccountGroups lists the account groups visible to the token.
func (c *Client) GetAccountGroups(ctx context.Context) (json.RawMessage, error) {
	return c.api.Get(ctx, "/account-groups", nil)
}

// ListAlerts lists alerts, optionally filtered by test or alert type.
func (c *Client) ListAlerts(ctx context.Context, win Window, aid, testID int, alertType string) (json.RawMessage, error) {
	q := url.Values{}
	win.apply(q)
	setAID(q, aid)
	if testID > 0 {
		q.Set("testId", strconv.Itoa(testID))
	}
	if alertType != "" {
		q.Set("type", alertType)
	}
	return c.api.Get(ctx, "/alerts", q)
}

func setAID(q url.Values, aid int) {
	if aid > 0 {
		q.Set("aid", strconv.Itoa(aid))
	}
}
