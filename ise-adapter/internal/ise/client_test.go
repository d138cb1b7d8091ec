package ise

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/netops-mcp/adapters/internal/upstream"
)

// newERS fakes the ERS config API behind TLS, matching the https-only real
// deployments (self-signed cert, hence VerifySSL=false in tests).
func newERS(t *testing.T) (*httptest.Server, *map[string]string) {
	lastRequest := map[string]string{}

	mux := http.NewServeMux()
	mux.HandleFunc("/ers/config/", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ersadmin" || pass != "ers-pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		lastRequest["path"] = r.URL.Path
		lastRequest["query"] = r.URL.RawQuery
		lastRequest["user-agent"] = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"SearchResult":{"total":0,"resources":[]}}`))
	})

	srv := httptest.NewTLSServer(mux)
	t.Cleanup(srv.Close)
	return srv, &lastRequest
}

func newTestClient(srv *httptest.Server, password string) *Client {
	return NewClient(zap.NewNop(), Options{
		Host:     srv.URL, // https:// prefix stripped by NewClient
		Username: "ersadmin",
		Password: password,
		Version:  "1.0",
	})
}

func TestList_SendsFilterAndPagination(t *testing.T) {
	srv, last := newERS(t)
	c := newTestClient(srv, "ers-pw")

	ep := Endpoint{Name: "endpoints", Path: "endpoint"}
	body, err := c.List(context.Background(), ep, "mac.CONTAINS.00:50", 2, 50)
	require.NoError(t, err)

	assert.Equal(t, `{"SearchResult":{"total":0,"resources":[]}}`, string(body))
	assert.Equal(t, "/ers/config/endpoint", (*last)["path"])
	assert.Contains(t, (*last)["query"], "page=2")
	assert.Contains(t, (*last)["query"], "size=50")
	assert.Contains(t, (*last)["query"], "filter=mac.CONTAINS.00%3A50")
	assert.Equal(t, "Network-MCP-Server/1.0", (*last)["user-agent"])
}

func TestList_CapsPageSize(t *testing.T) {
	srv, last := newERS(t)
	c := newTestClient(srv, "ers-pw")

	_, err := c.List(context.Background(), Endpoint{Name: "endpoints", Path: "endpoint"}, "", 0, 500)
	require.NoError(t, err)

	assert.Contains(t, (*last)["query"], "size=100")
	assert.Contains(t, (*last)["query"], "page=1")
}

func TestSearchEndpointByMAC_BuildsEqualsFilter(t *testing.T) {
	srv, last := newERS(t)
	c := newTestClient(srv, "ers-pw")

	_, err := c.SearchEndpointByMAC(context.Background(), "00:50:56:C0:00:01")
	require.NoError(t, err)

	assert.Equal(t, "/ers/config/endpoint", (*last)["path"])
	assert.Contains(t, (*last)["query"], "filter=mac.EQUALS.00%3A50%3A56%3AC0%3A00%3A01")
}

func TestSearchEndpointByMAC_EmptyRejected(t *testing.T) {
	srv, _ := newERS(t)
	c := newTestClient(srv, "ers-pw")

	_, err := c.SearchEndpointByMAC(context.Background(), "")

	var argErr *upstream.ArgumentError
	require.ErrorAs(t, err, &argErr)
}

func TestBadCredentialsSurfaceWithoutPassword(t *testing.T) {
	srv, _ := newERS(t)
	c := newTestClient(srv, "wrong-ers-pw")

	err := c.Verify(context.Background())

	// Basic auth has no refresh to attempt, so the persistent 401 is the
	// terminal authentication failure.
	var authErr *upstream.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.NotContains(t, err.Error(), "wrong-ers-pw")
}

func TestValidate_AcceptsShippedRegistry(t *testing.T) {
	require.NoError(t, Validate(Endpoints))
	assert.Len(t, Endpoints, 15)
}

func TestValidate_RejectsDuplicates(t *testing.T) {
	dup := []Endpoint{
		{Name: "a", Path: "x", Description: "d"},
		{Name: "a", Path: "y", Description: "d"},
	}
	assert.Error(t, Validate(dup))

	incomplete := []Endpoint{{Name: "a"}}
	assert.Error(t, Validate(incomplete))
}
