package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// TokenProvider supplies the credential material a Client attaches to
// outgoing requests. Login is invoked lazily (first call) and again exactly
// once after a 401; Apply stamps the current token onto a request.
type TokenProvider interface {
	Login(ctx context.Context, hc *http.Client) (string, error)
	Apply(req *http.Request, token string)
}

// LoginTokenProvider obtains a short-lived session token by POSTing to a
// fixed authentication endpoint with basic auth and extracting a field from
// the 200 JSON body. Catalyst Center issues tokens this way
// (POST /dna/system/api/v1/auth/token -> {"Token": "..."}).
type LoginTokenProvider struct {
	AuthURL    string
	Username   string
	Password   string
	TokenField string // JSON field holding the token, e.g. "Token"
	Header     string // request header carrying the token, e.g. "X-Auth-Token"
}

func (p *LoginTokenProvider) Login(ctx context.Context, hc *http.Client) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.AuthURL, bytes.NewReader(nil))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.Username, p.Password)

	resp, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login endpoint returned %d", resp.StatusCode)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", fmt.Errorf("login response decode: %w", err)
	}
	var token string
	if raw, ok := fields[p.TokenField]; ok {
		_ = json.Unmarshal(raw, &token)
	}
	if token == "" {
		return "", fmt.Errorf("login response missing %q field", p.TokenField)
	}
	return token, nil
}

func (p *LoginTokenProvider) Apply(req *http.Request, token string) {
	req.Header.Set(p.Header, token)
}

// StaticTokenProvider presents a fixed API key or bearer token. Its Login
// re-presents the same value, so a permanently invalid key costs one wasted
// re-authentication per call and then fails, matching the upstreams that
// never distinguish "expired" from "invalid".
type StaticTokenProvider struct {
	Header string // e.g. "Authorization"
	Scheme string // e.g. "Bearer" or "Token"; empty for bare header values
	Value  string
}

func (p *StaticTokenProvider) Login(_ context.Context, _ *http.Client) (string, error) {
	if p.Value == "" {
		return "", fmt.Errorf("no token configured")
	}
	return p.Value, nil
}

func (p *StaticTokenProvider) Apply(req *http.Request, token string) {
	if p.Scheme != "" {
		req.Header.Set(p.Header, p.Scheme+" "+token)
		return
	}
	req.Header.Set(p.Header, token)
}

// BasicAuthProvider presents username/password on every request (ISE ERS
// style). There is no session token; Login only validates that credentials
// are present so the 401-replay state machine stays uniform.
type BasicAuthProvider struct {
	Username string
	Password string
}

func (p *BasicAuthProvider) Login(_ context.Context, _ *http.Client) (string, error) {
	if p.Username == "" || p.Password == "" {
		return "", fmt.Errorf("username and password required")
	}
	return "basic", nil
}

func (p *BasicAuthProvider) Apply(req *http.Request, _ string) {
	req.SetBasicAuth(p.Username, p.Password)
}
