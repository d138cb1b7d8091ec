package toolserver

import (
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/netops-mcp/adapters/internal/upstream"
)

// failure is the structured outcome handed back to the dispatch layer when a
// client call fails. Upstream payloads are never reshaped; this envelope only
// exists for the error path.
type failure struct {
	Status  string `json:"status"`
	Kind    string `json:"kind"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
}

// Text wraps a successful text payload.
func Text(s string) *mcp.CallToolResult {
	return mcp.NewToolResultText(s)
}

// JSON wraps a raw upstream JSON body without re-encoding it.
func JSON(raw json.RawMessage) *mcp.CallToolResult {
	return mcp.NewToolResultText(string(raw))
}

// Failure converts a client error into a structured tool failure. Handlers
// return this instead of a protocol-level error so the hosting layer always
// receives a well-formed outcome. Errors outside the shared taxonomy can
// name their own kind by implementing FailureKind() string.
func Failure(err error) *mcp.CallToolResult {
	f := failure{Status: "error", Kind: "internal_error", Message: err.Error()}

	var (
		authErr *upstream.AuthError
		httpErr *upstream.HTTPError
		tErr    *upstream.TransportError
		argErr  *upstream.ArgumentError
	)
	switch {
	case errors.As(err, &argErr):
		f.Kind = "invalid_argument"
	case errors.As(err, &authErr):
		f.Kind = "authentication_error"
	case errors.As(err, &httpErr):
		f.Kind = "upstream_http_error"
		f.Code = httpErr.Status
	case errors.As(err, &tErr):
		f.Kind = "transport_error"
	default:
		var kinder interface{ FailureKind() string }
		if errors.As(err, &kinder) {
			f.Kind = kinder.FailureKind()
		}
	}

	body, marshalErr := json.Marshal(f)
	if marshalErr != nil {
		return mcp.NewToolResultError(f.Message)
	}
	return mcp.NewToolResultError(string(body))
}
