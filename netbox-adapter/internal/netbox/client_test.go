package netbox

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/netops-mcp/adapters/internal/upstream"
)

func newNetBox(t *testing.T) (*httptest.Server, *map[string]string) {
	lastRequest := map[string]string{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token nb-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		lastRequest["method"] = r.Method
		lastRequest["path"] = r.URL.Path
		lastRequest["query"] = r.URL.RawQuery
		if r.Body != nil {
			b, _ := io.ReadAll(r.Body)
			lastRequest["body"] = string(b)
		}
		_, _ = w.Write([]byte(`{"count":0,"results":[]}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &lastRequest
}

func TestGetDevices_ScopesToSite(t *testing.T) {
	srv, last := newNetBox(t)
	c := NewClient(zap.NewNop(), Options{URL: srv.URL, Token: "nb-token", VerifySSL: true})

	body, err := c.GetDevices(context.Background(), 10, 3)
	require.NoError(t, err)

	assert.Equal(t, `{"count":0,"results":[]}`, string(body))
	assert.Equal(t, "/api/dcim/devices/", (*last)["path"])

	q, err := url.ParseQuery((*last)["query"])
	require.NoError(t, err)
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, "3", q.Get("site_id"))
}

func TestSearch_TrimsEndpointSlashes(t *testing.T) {
	srv, last := newNetBox(t)
	c := NewClient(zap.NewNop(), Options{URL: srv.URL, Token: "nb-token", VerifySSL: true})

	_, err := c.Search(context.Background(), "/ipam/prefixes/", "10.0.0.0", 0)
	require.NoError(t, err)

	assert.Equal(t, "/api/ipam/prefixes/", (*last)["path"])
	q, err := url.ParseQuery((*last)["query"])
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0", q.Get("q"))
	assert.Equal(t, "50", q.Get("limit"))
}

func TestCreateIPAddress_PostsPayload(t *testing.T) {
	srv, last := newNetBox(t)
	c := NewClient(zap.NewNop(), Options{URL: srv.URL, Token: "nb-token", VerifySSL: true})

	_, err := c.CreateIPAddress(context.Background(), "10.0.0.1/24", "", "loopback")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, (*last)["method"])
	assert.Equal(t, "/api/ipam/ip-addresses/", (*last)["path"])
	assert.Contains(t, (*last)["body"], `"address":"10.0.0.1/24"`)
	assert.Contains(t, (*last)["body"], `"status":"active"`)
	assert.Contains(t, (*last)["body"], `"description":"loopback"`)
}

func TestGetDevice_RejectsNonPositiveID(t *testing.T) {
	c := NewClient(zap.NewNop(), Options{URL: "http://127.0.0.1:1", Token: "x", VerifySSL: true})

	_, err := c.GetDevice(context.Background(), 0)

	var argErr *upstream.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "device_id", argErr.Name)
}

func TestBadToken_AuthErrorWithoutToken(t *testing.T) {
	srv, _ := newNetBox(t)
	c := NewClient(zap.NewNop(), Options{URL: srv.URL, Token: "expired-nb-token", VerifySSL: true})

	err := c.Verify(context.Background())

	var authErr *upstream.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.NotContains(t, err.Error(), "expired-nb-token")
}
