package device

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"

	"github.com/netops-mcp/adapters/internal/upstream"
)

// ─── Fakes ──────────────────────────────────────────────────────────────────

type fakeSession struct {
	output   string
	runErr   error
	received strings.Builder
}

func (s *fakeSession) CombinedOutput(cmd string) ([]byte, error) {
	s.received.WriteString(cmd)
	if s.runErr != nil {
		return nil, s.runErr
	}
	return []byte(s.output), nil
}

func (s *fakeSession) StdinPipe() (io.WriteCloser, error) {
	return nopWriteCloser{&s.received}, nil
}

func (s *fakeSession) StdoutPipe() (io.Reader, error) {
	return strings.NewReader(s.output), nil
}

func (s *fakeSession) Shell() error { return nil }

func (s *fakeSession) Wait() error { return s.runErr }

func (s *fakeSession) Close() error { return nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

type fakeConn struct {
	sess       *fakeSession
	sessionErr error
	closeCount atomic.Int32
}

func (c *fakeConn) NewSession() (session, error) {
	if c.sessionErr != nil {
		return nil, c.sessionErr
	}
	return c.sess, nil
}

func (c *fakeConn) Close() error {
	c.closeCount.Add(1)
	return nil
}

func newFakeRunner(t *testing.T, c *fakeConn, dialErr error) *Runner {
	t.Helper()
	r := NewRunner(zap.NewNop(), Options{Username: "netadmin", Password: "ios-secret"})
	r.dial = func(_ context.Context, _ string, cfg *ssh.ClientConfig) (conn, error) {
		assert.Equal(t, "netadmin", cfg.User)
		if dialErr != nil {
			return nil, dialErr
		}
		return c, nil
	}
	return r
}

// ─── Show ───────────────────────────────────────────────────────────────────

func TestShow_ReturnsOutputAndClosesOnce(t *testing.T) {
	fc := &fakeConn{sess: &fakeSession{output: "GigabitEthernet0/1 up up\n"}}
	r := newFakeRunner(t, fc, nil)

	out, err := r.Show(context.Background(), "sw1.lab", "show ip interface brief")
	require.NoError(t, err)

	assert.Contains(t, out, "GigabitEthernet0/1")
	assert.Equal(t, "show ip interface brief", fc.sess.received.String())
	assert.EqualValues(t, 1, fc.closeCount.Load())
}

func TestShow_DialFailureIsConnectError(t *testing.T) {
	r := newFakeRunner(t, nil, errors.New("ssh: unable to authenticate with password ios-secret"))

	_, err := r.Show(context.Background(), "sw1.lab", "show version")

	var connErr *ConnectError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "sw1.lab", connErr.Host)
	assert.NotContains(t, err.Error(), "ios-secret")
}

func TestShow_CommandFailureStillClosesOnce(t *testing.T) {
	fc := &fakeConn{sess: &fakeSession{runErr: errors.New("channel closed")}}
	r := newFakeRunner(t, fc, nil)

	_, err := r.Show(context.Background(), "sw1.lab", "show version")

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.EqualValues(t, 1, fc.closeCount.Load())
}

func TestShow_EmptyArgumentsRejected(t *testing.T) {
	r := newFakeRunner(t, &fakeConn{sess: &fakeSession{}}, nil)

	var argErr *upstream.ArgumentError
	_, err := r.Show(context.Background(), "", "show version")
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "host", argErr.Name)

	_, err = r.Show(context.Background(), "sw1.lab", "")
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "command", argErr.Name)
}

// ─── Configure ──────────────────────────────────────────────────────────────

func TestConfigure_SendsConfigModeScriptAndSaves(t *testing.T) {
	fc := &fakeConn{sess: &fakeSession{output: "sw1(config)#\nBuilding configuration...\n[OK]\n"}}
	r := newFakeRunner(t, fc, nil)

	out, err := r.Configure(context.Background(), "sw1.lab",
		[]string{"interface gi0/1", "no shutdown"})
	require.NoError(t, err)

	script := fc.sess.received.String()
	assert.Contains(t, script, "configure terminal\n")
	assert.Contains(t, script, "interface gi0/1\n")
	assert.Contains(t, script, "no shutdown\n")
	assert.Contains(t, script, "write memory\n")
	assert.Less(t, strings.Index(script, "no shutdown"), strings.Index(script, "write memory"))

	assert.Contains(t, out, "[OK]")
	assert.EqualValues(t, 1, fc.closeCount.Load())
}

func TestConfigure_EmptyCommandListRejectedBeforeDial(t *testing.T) {
	dialed := false
	r := NewRunner(zap.NewNop(), Options{Username: "netadmin", Password: "pw"})
	r.dial = func(context.Context, string, *ssh.ClientConfig) (conn, error) {
		dialed = true
		return nil, errors.New("unexpected")
	}

	_, err := r.Configure(context.Background(), "sw1.lab", nil)

	var argErr *upstream.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "commands", argErr.Name)
	assert.False(t, dialed)
}

func TestConfigure_WaitFailureIsCommandError(t *testing.T) {
	fc := &fakeConn{sess: &fakeSession{runErr: errors.New("session aborted")}}
	r := newFakeRunner(t, fc, nil)

	_, err := r.Configure(context.Background(), "sw1.lab", []string{"logging host 10.0.0.9"})

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.EqualValues(t, 1, fc.closeCount.Load())
}

// ─── Context cancellation ───────────────────────────────────────────────────

func TestCancelledContextClosesConnectionOnce(t *testing.T) {
	fc := &fakeConn{sess: &fakeSession{output: "ok"}}
	r := newFakeRunner(t, fc, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The call itself may still succeed against the fake; what matters is
	// that the teardown never double-closes.
	_, _ = r.Show(ctx, "sw1.lab", "show clock")

	assert.EqualValues(t, 1, fc.closeCount.Load())
}
