// Package splunk forwards tool calls to a Splunk-side MCP backend over
// JSON-RPC 2.0. Unlike the REST adapters this one speaks to another MCP
// server, so every call is a POST of a tools/call envelope.
package splunk

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/netops-mcp/adapters/internal/upstream"
	"github.com/netops-mcp/adapters/pkg/redact"
)

// Options configures a Client.
type Options struct {
	BackendURL string // e.g. https://splunk.example.com:8089/services/mcp
	APIKey     string
	VerifySSL  bool
}

// RPCError is a JSON-RPC level failure returned by the Splunk backend.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("splunk backend rpc error %d: %s", e.Code, e.Message)
}

// FailureKind names the error class for the tool failure envelope.
func (e *RPCError) FailureKind() string { return "upstream_rpc_error" }

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      int       `json:"id"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
}

type rpcParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// Client forwards tool invocations to the Splunk MCP backend.
type Client struct {
	logger *zap.Logger
	api    *upstream.Client
}

// NewClient builds a Client for one Splunk backend.
func NewClient(logger *zap.Logger, opts Options) *Client {
	api := upstream.New(logger, upstream.Options{
		Name:    "splunk",
		BaseURL: opts.BackendURL,
		Tokens: &upstream.StaticTokenProvider{
			Header: "Authorization",
			Scheme: "Bearer",
			Value:  opts.APIKey,
		},
		Redactor:    redact.New(opts.APIKey),
		InsecureTLS: !opts.VerifySSL,
	})
	return &Client{logger: logger, api: api}
}

// CallTool invokes one named tool on the backend and returns its result
// payload. A JSON-RPC error in the envelope surfaces as *RPCError.
func (c *Client) CallTool(ctx context.Context, name string, arguments map[string]any) (json.RawMessage, error) {
	if name == "" {
		return nil, &upstream.ArgumentError{Name: "name", Reason: "required"}
	}
	if arguments == nil {
		arguments = map[string]any{}
	}

	body, err := c.api.Post(ctx, "", rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  rpcParams{Name: name, Arguments: arguments},
	})
	if err != nil {
		return nil, err
	}

	var resp rpcResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &upstream.TransportError{
			Upstream: "splunk",
			Err:      fmt.Errorf("malformed rpc response: %w", err),
		}
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if resp.Result == nil {
		return json.RawMessage(`{}`), nil
	}
	return resp.Result, nil
}

// Verify checks connectivity and the token with a lightweight info call.
func (c *Client) Verify(ctx context.Context) error {
	_, err := c.CallTool(ctx, "get_splunk_info", nil)
	return err
}
