package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/netops-mcp/adapters/pkg/redact"
)

// fakeUpstream serves a login endpoint and one API endpoint whose behavior
// is driven by the test.
type fakeUpstream struct {
	t           *testing.T
	loginCalls  atomic.Int32
	apiCalls    atomic.Int32
	loginStatus int
	apiHandler  func(calls int32, w http.ResponseWriter, r *http.Request)
	srv         *httptest.Server
}

func newFakeUpstream(t *testing.T, loginStatus int, apiHandler func(int32, http.ResponseWriter, *http.Request)) *fakeUpstream {
	f := &fakeUpstream{t: t, loginStatus: loginStatus, apiHandler: apiHandler}
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		n := f.loginCalls.Add(1)
		if f.loginStatus != http.StatusOK {
			w.WriteHeader(f.loginStatus)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"Token": "tok-" + string(rune('0'+n))})
	})
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		f.apiHandler(f.apiCalls.Add(1), w, r)
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeUpstream) client(password string) *Client {
	return New(zap.NewNop(), Options{
		Name:    "test",
		BaseURL: f.srv.URL,
		Tokens: &LoginTokenProvider{
			AuthURL:    f.srv.URL + "/auth/token",
			Username:   "admin",
			Password:   password,
			TokenField: "Token",
			Header:     "X-Auth-Token",
		},
		Redactor: redact.New(password),
	})
}

// ─── Pass-through fidelity ───────────────────────────────────────────────────

func TestGet_PassesBodyThroughUnmodified(t *testing.T) {
	const upstreamBody = `{"response":[{"id":"1"}]}`
	f := newFakeUpstream(t, http.StatusOK, func(_ int32, w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("X-Auth-Token"))
		_, _ = w.Write([]byte(upstreamBody))
	})

	body, err := f.client("pw").Get(context.Background(), "/api/things", nil)
	require.NoError(t, err)
	assert.Equal(t, upstreamBody, string(body))
}

// ─── Token reuse ─────────────────────────────────────────────────────────────

func TestGet_SecondCallReusesCachedToken(t *testing.T) {
	f := newFakeUpstream(t, http.StatusOK, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	c := f.client("pw")

	_, err := c.Get(context.Background(), "/api/a", nil)
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "/api/b", nil)
	require.NoError(t, err)

	assert.EqualValues(t, 1, f.loginCalls.Load(), "second call must not re-authenticate")
}

// ─── 401 triggers exactly one re-auth + replay ───────────────────────────────

func TestGet_StaleTokenReplayedOnce(t *testing.T) {
	f := newFakeUpstream(t, http.StatusOK, func(calls int32, w http.ResponseWriter, _ *http.Request) {
		if calls == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	body, err := f.client("pw").Get(context.Background(), "/api/things", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.EqualValues(t, 2, f.apiCalls.Load())
	assert.EqualValues(t, 2, f.loginCalls.Load(), "initial login + one re-auth")
}

func TestGet_PersistentUnauthorizedBoundsRetries(t *testing.T) {
	f := newFakeUpstream(t, http.StatusOK, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := f.client("pw").Get(context.Background(), "/api/things", nil)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.EqualValues(t, 2, f.apiCalls.Load(), "original + exactly one replay")
	assert.EqualValues(t, 2, f.loginCalls.Load())
}

// ─── Authentication failure surfaces as AuthError, redacted ──────────────────

func TestGet_LoginFailureRedactsPassword(t *testing.T) {
	f := newFakeUpstream(t, http.StatusForbidden, nil)

	_, err := f.client("sup3r-secret").Get(context.Background(), "/api/things", nil)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.NotContains(t, err.Error(), "sup3r-secret")
}

// ─── Non-2xx carries status and body ─────────────────────────────────────────

func TestGet_UpstreamErrorCarriesStatusAndBody(t *testing.T) {
	f := newFakeUpstream(t, http.StatusOK, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"maintenance"}`))
	})

	_, err := f.client("pw").Get(context.Background(), "/api/things", nil)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
	assert.JSONEq(t, `{"error":"maintenance"}`, string(httpErr.Body))
}

// ─── Query encoding and POST bodies ──────────────────────────────────────────

func TestGet_QueryParametersEncoded(t *testing.T) {
	var gotQuery url.Values
	f := newFakeUpstream(t, http.StatusOK, func(_ int32, w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	})

	q := url.Values{}
	q.Set("hostname", "edge-sw01")
	q.Set("limit", "5")
	_, err := f.client("pw").Get(context.Background(), "/api/network-device", q)
	require.NoError(t, err)
	assert.Equal(t, "edge-sw01", gotQuery.Get("hostname"))
	assert.Equal(t, "5", gotQuery.Get("limit"))
}

func TestPost_SendsJSONBody(t *testing.T) {
	var gotBody map[string]any
	var gotContentType string
	f := newFakeUpstream(t, http.StatusOK, func(_ int32, w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"taskId":"t1"}`))
	})

	body, err := f.client("pw").Post(context.Background(), "/api/task", map[string]string{"op": "sync"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "sync", gotBody["op"])
	assert.JSONEq(t, `{"taskId":"t1"}`, string(body))
}

// ─── Static and basic-auth providers ─────────────────────────────────────────

func TestStaticTokenProvider_BearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(zap.NewNop(), Options{
		Name:     "te",
		BaseURL:  srv.URL,
		Tokens:   &StaticTokenProvider{Header: "Authorization", Scheme: "Bearer", Value: "abc"},
		Redactor: redact.New("abc"),
	})
	_, err := c.Get(context.Background(), "/tests", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
}

func TestStaticTokenProvider_MissingValueFailsBeforeNetwork(t *testing.T) {
	c := New(zap.NewNop(), Options{
		Name:    "te",
		BaseURL: "http://127.0.0.1:1", // must never be dialed
		Tokens:  &StaticTokenProvider{Header: "Authorization", Scheme: "Bearer"},
	})

	_, err := c.Get(context.Background(), "/tests", nil)
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestBasicAuthProvider_AppliedPerRequest(t *testing.T) {
	var user, pass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, _ = r.BasicAuth()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(zap.NewNop(), Options{
		Name:     "ise",
		BaseURL:  srv.URL,
		Tokens:   &BasicAuthProvider{Username: "ers-admin", Password: "pw"},
		Redactor: redact.New("pw"),
	})
	_, err := c.Get(context.Background(), "/networkdevice", nil)
	require.NoError(t, err)
	assert.Equal(t, "ers-admin", user)
	assert.Equal(t, "pw", pass)
}

// ─── Transport failures ──────────────────────────────────────────────────────

func TestGet_ConnectionRefusedIsTransportError(t *testing.T) {
	c := New(zap.NewNop(), Options{
		Name:     "test",
		BaseURL:  "http://127.0.0.1:1",
		Tokens:   &StaticTokenProvider{Header: "Authorization", Scheme: "Bearer", Value: "x"},
		Redactor: redact.New("x"),
	})

	_, err := c.Get(context.Background(), "/anything", nil)
	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
}
