package splunk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/netops-mcp/adapters/internal/upstream"
)

// newBackend fakes the Splunk-side MCP endpoint behind TLS, answering
// JSON-RPC tools/call envelopes.
func newBackend(t *testing.T, respond func(name string, args map[string]any) (any, *RPCError)) (*httptest.Server, *[]byte) {
	var lastBody []byte

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer splunk-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		lastBody, _ = io.ReadAll(r.Body)

		var req struct {
			JSONRPC string `json:"jsonrpc"`
			Method  string `json:"method"`
			Params  struct {
				Name      string         `json:"name"`
				Arguments map[string]any `json:"arguments"`
			} `json:"params"`
		}
		if err := json.Unmarshal(lastBody, &req); err != nil || req.JSONRPC != "2.0" || req.Method != "tools/call" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		result, rpcErr := respond(req.Params.Name, req.Params.Arguments)
		if rpcErr != nil {
			_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": 1, "error": rpcErr})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": 1, "result": result})
	}))
	t.Cleanup(srv.Close)
	return srv, &lastBody
}

func newTestClient(srv *httptest.Server, key string) *Client {
	return NewClient(zap.NewNop(), Options{BackendURL: srv.URL, APIKey: key})
}

func TestCallTool_ForwardsEnvelopeAndExtractsResult(t *testing.T) {
	srv, lastBody := newBackend(t, func(name string, args map[string]any) (any, *RPCError) {
		assert.Equal(t, "run_splunk_query", name)
		assert.Equal(t, "search index=_internal", args["query"])
		return map[string]any{"resultCount": 3}, nil
	})
	c := newTestClient(srv, "splunk-key")

	body, err := c.CallTool(context.Background(), "run_splunk_query",
		map[string]any{"query": "search index=_internal"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"resultCount":3}`, string(body))
	assert.Contains(t, string(*lastBody), `"jsonrpc":"2.0"`)
	assert.Contains(t, string(*lastBody), `"method":"tools/call"`)
}

func TestCallTool_NilArgumentsSentAsEmptyObject(t *testing.T) {
	srv, lastBody := newBackend(t, func(_ string, args map[string]any) (any, *RPCError) {
		assert.NotNil(t, args)
		return map[string]any{}, nil
	})
	c := newTestClient(srv, "splunk-key")

	_, err := c.CallTool(context.Background(), "get_indexes", nil)
	require.NoError(t, err)

	assert.Contains(t, string(*lastBody), `"arguments":{}`)
}

func TestCallTool_RPCErrorSurfaces(t *testing.T) {
	srv, _ := newBackend(t, func(_ string, _ map[string]any) (any, *RPCError) {
		return nil, &RPCError{Code: -32601, Message: "unknown tool"}
	})
	c := newTestClient(srv, "splunk-key")

	_, err := c.CallTool(context.Background(), "no_such_tool", nil)

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32601, rpcErr.Code)
	assert.Contains(t, rpcErr.Error(), "unknown tool")
}

func TestCallTool_BadTokenIsAuthError(t *testing.T) {
	srv, _ := newBackend(t, func(_ string, _ map[string]any) (any, *RPCError) {
		return map[string]any{}, nil
	})
	c := newTestClient(srv, "wrong-splunk-key")

	err := c.Verify(context.Background())

	var authErr *upstream.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.NotContains(t, err.Error(), "wrong-splunk-key")
}

func TestCallTool_MalformedResponseIsTransportError(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(srv, "splunk-key")

	_, err := c.CallTool(context.Background(), "get_indexes", nil)

	var transportErr *upstream.TransportError
	require.ErrorAs(t, err, &transportErr)
}
