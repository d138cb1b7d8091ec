package redact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean_ReplacesEverySecret(t *testing.T) {
	r := New("hunter2", "tok-abc123")

	out := r.Clean("login failed for admin:hunter2 with token tok-abc123")
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "tok-abc123")
	assert.Contains(t, out, "***REDACTED***")
}

func TestClean_NilAndEmptySafe(t *testing.T) {
	var r *Redactor
	assert.Equal(t, "as-is", r.Clean("as-is"))

	r = New("")
	assert.Equal(t, "password stays", r.Clean("password stays"))
}

func TestCleanErr(t *testing.T) {
	r := New("s3cret")

	err := r.CleanErr(errors.New("ssh: unable to authenticate with s3cret"))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "s3cret")

	assert.NoError(t, r.CleanErr(nil))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "unset", Preview(""))
	assert.Equal(t, "******", Preview("abc123"))
	assert.Equal(t, "abcd...wxyz", Preview("abcdefghijklmnopqrstuvwxyz"))
}
