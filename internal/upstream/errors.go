package upstream

import "fmt"

// AuthError means the initial or post-401 re-authentication failed. It fails
// the specific call, never the process.
type AuthError struct {
	Upstream string
	Err      error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s authentication failed: %v", e.Upstream, e.Err)
	}
	return fmt.Sprintf("%s authentication failed", e.Upstream)
}

func (e *AuthError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx upstream response that survived the allowed retry.
// Status and body are carried verbatim for the caller to interpret.
type HTTPError struct {
	Upstream string
	Status   int
	Body     []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Upstream, e.Status, e.Body)
}

// TransportError is a network-level failure (DNS, TCP reset, TLS). The
// wrapped message has already been scrubbed of credential values.
type TransportError struct {
	Upstream string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Upstream, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ArgumentError rejects a structurally invalid tool parameter before any
// network call is attempted.
type ArgumentError struct {
	Name   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Name, e.Reason)
}
