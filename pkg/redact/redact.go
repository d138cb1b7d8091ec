// Package redact scrubs credential material from strings before they reach
// logs or tool results.
package redact

import (
	"fmt"
	"strings"
)

const placeholder = "***REDACTED***"

// Redactor replaces known secret values by substring match. The zero value
// redacts nothing and is safe to use.
type Redactor struct {
	secrets []string
}

// New builds a Redactor for the given secret values. Empty strings are
// ignored so optional credentials can be passed unconditionally.
func New(secrets ...string) *Redactor {
	r := &Redactor{}
	for _, s := range secrets {
		if s != "" {
			r.secrets = append(r.secrets, s)
		}
	}
	return r
}

// Clean returns msg with every known secret value replaced.
func (r *Redactor) Clean(msg string) string {
	if r == nil {
		return msg
	}
	for _, s := range r.secrets {
		msg = strings.ReplaceAll(msg, s, placeholder)
	}
	return msg
}

// CleanErr returns an error whose message has been scrubbed. The original
// error chain is intentionally dropped: wrapped errors from transport
// libraries can embed credentials (e.g. userinfo in URLs).
func (r *Redactor) CleanErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s", r.Clean(err.Error()))
}

// Preview returns a loggable hint of a secret: first 4 and last 4 characters
// for long values, fully masked otherwise.
func Preview(secret string) string {
	if secret == "" {
		return "unset"
	}
	if len(secret) <= 12 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
