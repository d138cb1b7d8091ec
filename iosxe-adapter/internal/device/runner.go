// Package device executes commands on IOS XE devices over SSH. Credentials
// are fixed at construction; per-call input is only the target host and the
// commands themselves.
package device

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"

	"github.com/netops-mcp/adapters/internal/upstream"
	"github.com/netops-mcp/adapters/pkg/redact"
)

// Options configures a Runner.
type Options struct {
	Username string
	Password string
	Port     int           // defaults to 22
	Timeout  time.Duration // per-connection, defaults to 30s
}

// session is the subset of *ssh.Session the runner uses.
type session interface {
	CombinedOutput(cmd string) ([]byte, error)
	StdinPipe() (io.WriteCloser, error)
	StdoutPipe() (io.Reader, error)
	Shell() error
	Wait() error
	Close() error
}

// conn is an established SSH connection.
type conn interface {
	NewSession() (session, error)
	Close() error
}

type dialFunc func(ctx context.Context, addr string, cfg *ssh.ClientConfig) (conn, error)

// Runner opens one SSH connection per call and tears it down when the call
// returns, whatever the outcome.
type Runner struct {
	logger   *zap.Logger
	opts     Options
	redactor *redact.Redactor
	dial     dialFunc
}

// NewRunner builds a Runner with the given device credentials.
func NewRunner(logger *zap.Logger, opts Options) *Runner {
	if opts.Port == 0 {
		opts.Port = 22
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Runner{
		logger:   logger,
		opts:     opts,
		redactor: redact.New(opts.Password),
		dial:     dialSSH,
	}
}

// Show runs a single show command and returns the device output.
func (r *Runner) Show(ctx context.Context, host, command string) (string, error) {
	if host == "" {
		return "", &upstream.ArgumentError{Name: "host", Reason: "required"}
	}
	if command == "" {
		return "", &upstream.ArgumentError{Name: "command", Reason: "required"}
	}

	c, done, err := r.connect(ctx, host)
	if err != nil {
		return "", err
	}
	defer done()

	sess, err := c.NewSession()
	if err != nil {
		return "", &CommandError{Host: host, Err: r.redactor.CleanErr(err)}
	}
	defer sess.Close() //nolint:errcheck

	out, err := sess.CombinedOutput(command)
	if err != nil {
		return "", &CommandError{Host: host, Err: r.redactor.CleanErr(err)}
	}

	r.logger.Info("show command executed",
		zap.String("host", host),
		zap.String("command", command))
	return r.redactor.Clean(string(out)), nil
}

// Configure applies a list of configuration commands in config mode and
// saves the running config with "write memory" afterwards.
func (r *Runner) Configure(ctx context.Context, host string, commands []string) (string, error) {
	if host == "" {
		return "", &upstream.ArgumentError{Name: "host", Reason: "required"}
	}
	if len(commands) == 0 {
		return "", &upstream.ArgumentError{Name: "commands", Reason: "must be a non-empty list"}
	}

	c, done, err := r.connect(ctx, host)
	if err != nil {
		return "", err
	}
	defer done()

	sess, err := c.NewSession()
	if err != nil {
		return "", &CommandError{Host: host, Err: r.redactor.CleanErr(err)}
	}
	defer sess.Close() //nolint:errcheck

	stdin, err := sess.StdinPipe()
	if err != nil {
		return "", &CommandError{Host: host, Err: r.redactor.CleanErr(err)}
	}
	stdout, err := sess.StdoutPipe()
	if err != nil {
		return "", &CommandError{Host: host, Err: r.redactor.CleanErr(err)}
	}
	if err := sess.Shell(); err != nil {
		return "", &CommandError{Host: host, Err: r.redactor.CleanErr(err)}
	}

	var buf bytes.Buffer
	copied := make(chan struct{})
	go func() {
		_, _ = io.Copy(&buf, stdout)
		close(copied)
	}()

	script := append([]string{"terminal length 0", "configure terminal"}, commands...)
	script = append(script, "end", "write memory", "exit")
	if _, err := io.WriteString(stdin, strings.Join(script, "\n")+"\n"); err != nil {
		return "", &CommandError{Host: host, Err: r.redactor.CleanErr(err)}
	}
	_ = stdin.Close()

	if err := sess.Wait(); err != nil {
		return "", &CommandError{Host: host, Err: r.redactor.CleanErr(err)}
	}
	<-copied

	r.logger.Info("configuration applied",
		zap.String("host", host),
		zap.Int("commands", len(commands)))
	return r.redactor.Clean(buf.String()), nil
}

// connect dials the device and returns the connection plus a cleanup that
// closes it exactly once. Cancelling the context closes the connection too,
// unblocking any in-flight session call.
func (r *Runner) connect(ctx context.Context, host string) (conn, func(), error) {
	addr := net.JoinHostPort(host, strconv.Itoa(r.opts.Port))
	cfg := &ssh.ClientConfig{
		User:            r.opts.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(r.opts.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // lab devices, no host key distribution
		Timeout:         r.opts.Timeout,
	}

	c, err := r.dial(ctx, addr, cfg)
	if err != nil {
		r.logger.Warn("ssh connect failed", zap.String("host", host))
		return nil, nil, &ConnectError{Host: host, Err: r.redactor.CleanErr(err)}
	}

	var once sync.Once
	closeConn := func() {
		once.Do(func() { _ = c.Close() })
	}

	finished := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			closeConn()
		case <-finished:
		}
	}()
	done := func() {
		close(finished)
		closeConn()
	}
	return c, done, nil
}

// clientConn adapts *ssh.Client to the conn interface.
type clientConn struct {
	client *ssh.Client
}

func (c *clientConn) NewSession() (session, error) {
	s, err := c.client.NewSession()
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (c *clientConn) Close() error { return c.client.Close() }

func dialSSH(ctx context.Context, addr string, cfg *ssh.ClientConfig) (conn, error) {
	d := &net.Dialer{Timeout: cfg.Timeout}
	raw, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(raw, addr, cfg)
	if err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ssh handshake: %w", err)
	}
	return &clientConn{client: ssh.NewClient(sshConn, chans, reqs)}, nil
}
