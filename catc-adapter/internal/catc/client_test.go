package catc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/netops-mcp/adapters/internal/upstream"
)

// newCatalystCenter fakes the system auth endpoint plus the intent API.
func newCatalystCenter(t *testing.T) (*httptest.Server, *atomic.Int32, *map[string]string) {
	var logins atomic.Int32
	lastRequest := map[string]string{}

	mux := http.NewServeMux()
	mux.HandleFunc("/dna/system/api/v1/auth/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "dnac-pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		logins.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]string{"Token": "catc-token"})
	})
	mux.HandleFunc("/dna/intent/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Auth-Token") != "catc-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		lastRequest["path"] = r.URL.Path
		lastRequest["query"] = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"response":[{"id":"1"}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &logins, &lastRequest
}

func TestGetNetworkDevices_AuthenticatesAndFilters(t *testing.T) {
	srv, logins, last := newCatalystCenter(t)
	c := NewClient(zap.NewNop(), Options{BaseURL: srv.URL, Username: "admin", Password: "dnac-pw"})

	body, err := c.GetNetworkDevices(context.Background(), "edge-sw01", "Switches and Hubs")
	require.NoError(t, err)

	assert.Equal(t, `{"response":[{"id":"1"}]}`, string(body))
	assert.Equal(t, "/dna/intent/api/v1/network-device", (*last)["path"])
	assert.Contains(t, (*last)["query"], "hostname=edge-sw01")
	assert.EqualValues(t, 1, logins.Load())
}

func TestSecondCallReusesToken(t *testing.T) {
	srv, logins, _ := newCatalystCenter(t)
	c := NewClient(zap.NewNop(), Options{BaseURL: srv.URL, Username: "admin", Password: "dnac-pw"})

	_, err := c.GetSites(context.Background())
	require.NoError(t, err)
	_, err = c.GetNetworkHealth(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 1, logins.Load())
}

func TestBadCredentialsRedactedAuthError(t *testing.T) {
	srv, _, _ := newCatalystCenter(t)
	c := NewClient(zap.NewNop(), Options{BaseURL: srv.URL, Username: "admin", Password: "wrong-pass"})

	_, err := c.GetSites(context.Background())

	var authErr *upstream.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.NotContains(t, err.Error(), "wrong-pass")
}

func TestEmptyDeviceIDRejectedBeforeNetwork(t *testing.T) {
	c := NewClient(zap.NewNop(), Options{BaseURL: "http://127.0.0.1:1", Username: "a", Password: "b"})

	_, err := c.GetDeviceDetail(context.Background(), "")

	var argErr *upstream.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "device_id", argErr.Name)
}

func TestVerify_FailsOnUnreachableUpstream(t *testing.T) {
	c := NewClient(zap.NewNop(), Options{BaseURL: "http://127.0.0.1:1", Username: "a", Password: "b"})
	assert.Error(t, c.Verify(context.Background()))
}
