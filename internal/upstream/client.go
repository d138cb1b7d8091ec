// Package upstream implements the authenticated HTTP client shared by the
// REST adapters: one cached session token, transparent re-authentication on
// a 401 with exactly one replay of the original request, and typed errors
// for the tool layer to classify.
package upstream

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/netops-mcp/adapters/internal/metrics"
	"github.com/netops-mcp/adapters/internal/rate"
	"github.com/netops-mcp/adapters/pkg/redact"
)

// Options configures a Client.
type Options struct {
	// Name tags log lines, metrics and error messages, e.g. "catc".
	Name string
	// BaseURL is prepended to every request path.
	BaseURL string
	// Tokens supplies and applies the credential material.
	Tokens TokenProvider
	// Headers are stamped onto every request (User-Agent etc.).
	Headers map[string]string
	// Limiter throttles outbound calls when set.
	Limiter *rate.Limiter
	// Redactor scrubs secrets from transport errors and log lines.
	Redactor *redact.Redactor
	// InsecureTLS skips certificate verification (lab upstreams with
	// self-signed certs, mirroring the originals' verify=false).
	InsecureTLS bool
	// Timeout bounds each HTTP attempt. Defaults to 30s.
	Timeout time.Duration
}

// Client performs authenticated calls against one upstream HTTP API.
type Client struct {
	logger   *zap.Logger
	name     string
	baseURL  string
	http     *http.Client
	tokens   TokenProvider
	headers  map[string]string
	limiter  *rate.Limiter
	redactor *redact.Redactor

	mu    sync.Mutex
	token string // empty until the first successful authentication
}

// New constructs a Client. The session starts unauthenticated; the first
// call triggers a login.
func New(logger *zap.Logger, opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	hc := &http.Client{Timeout: timeout}
	if opts.InsecureTLS {
		hc.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
		}
	}
	return &Client{
		logger:   logger,
		name:     opts.Name,
		baseURL:  opts.BaseURL,
		http:     hc,
		tokens:   opts.Tokens,
		headers:  opts.Headers,
		limiter:  opts.Limiter,
		redactor: opts.Redactor,
	}
}

// Authenticate primes the session token, logging in if none is cached.
// Adapters call this at startup to verify credentials before serving tools
// and from their health probes afterwards.
func (c *Client) Authenticate(ctx context.Context) error {
	if _, err := c.sessionToken(ctx); err != nil {
		return &AuthError{Upstream: c.name, Err: c.redactor.CleanErr(err)}
	}
	return nil
}

// Get performs an authenticated GET request and returns the raw JSON body.
// The payload is passed through byte-for-byte.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post performs an authenticated POST request with a JSON body and returns
// the raw JSON response body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, &ArgumentError{Name: "body", Reason: err.Error()}
		}
	}
	return c.do(ctx, http.MethodPost, path, nil, payload)
}

// Put performs an authenticated PUT request with a JSON body. A handful of
// tools (Meraki firmware scheduling) need it; everything else is Get/Post.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &ArgumentError{Name: "body", Reason: err.Error()}
	}
	return c.do(ctx, http.MethodPut, path, nil, payload)
}

// do runs the request state machine: ensure a session, execute, and on a 401
// re-authenticate once and replay the identical request exactly once.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Upstream: c.name, Err: err}
		}
	}

	token, err := c.sessionToken(ctx)
	if err != nil {
		return nil, &AuthError{Upstream: c.name, Err: c.redactor.CleanErr(err)}
	}

	start := time.Now()
	status, body, err := c.send(ctx, method, path, query, payload, token)
	if err != nil {
		metrics.ObserveUpstream(c.name, method, "transport_error", start)
		return nil, &TransportError{Upstream: c.name, Err: c.redactor.CleanErr(err)}
	}

	if status == http.StatusUnauthorized {
		c.logger.Info(c.name+".token_rejected", zap.String("path", path))
		token, err = c.reauthenticate(ctx, token)
		if err != nil {
			metrics.ReauthTotal.WithLabelValues(c.name, "failed").Inc()
			metrics.ObserveUpstream(c.name, method, "unauthorized", start)
			return nil, &AuthError{Upstream: c.name, Err: c.redactor.CleanErr(err)}
		}
		metrics.ReauthTotal.WithLabelValues(c.name, "ok").Inc()

		status, body, err = c.send(ctx, method, path, query, payload, token)
		if err != nil {
			metrics.ObserveUpstream(c.name, method, "transport_error", start)
			return nil, &TransportError{Upstream: c.name, Err: c.redactor.CleanErr(err)}
		}
		if status == http.StatusUnauthorized {
			metrics.ObserveUpstream(c.name, method, "unauthorized", start)
			return nil, &AuthError{Upstream: c.name}
		}
	}

	metrics.ObserveUpstream(c.name, method, strconv.Itoa(status), start)

	if status < 200 || status > 299 {
		c.logger.Warn(c.name+".non_2xx",
			zap.Int("status", status),
			zap.String("path", path),
			zap.String("body", c.redactor.Clean(string(body))))
		return nil, &HTTPError{Upstream: c.name, Status: status, Body: body}
	}

	c.logger.Debug(c.name+".http_success",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("elapsed", time.Since(start)))

	return body, nil
}

// send executes a single HTTP attempt.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (int, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	c.tokens.Apply(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// sessionToken returns the cached token, logging in first if the session is
// absent. Token reads and writes share one mutex so a refresh never corrupts
// a concurrent call's view.
func (c *Client) sessionToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token, nil
	}
	token, err := c.tokens.Login(ctx, c.http)
	if err != nil {
		return "", err
	}
	c.token = token
	c.logger.Info(c.name + ".authenticated")
	return token, nil
}

// reauthenticate refreshes the session after a 401. If another in-flight
// call already replaced the stale token, that one is reused so each logical
// request performs at most one authentication.
func (c *Client) reauthenticate(ctx context.Context, stale string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && c.token != stale {
		return c.token, nil
	}
	c.token = ""
	token, err := c.tokens.Login(ctx, c.http)
	if err != nil {
		return "", err
	}
	c.token = token
	c.logger.Info(c.name + ".reauthenticated")
	return token, nil
}
