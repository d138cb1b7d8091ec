package device

import "fmt"

// ConnectError is a failure to establish or authenticate the SSH session.
// Bad credentials, unreachable hosts and handshake failures all land here.
type ConnectError struct {
	Host string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connecting to %s: %v", e.Host, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// FailureKind names the error class for the tool failure envelope.
func (e *ConnectError) FailureKind() string { return "device_connect_error" }

// CommandError is a failure after the session was established: the channel
// broke or the device rejected the command exchange.
type CommandError struct {
	Host string
	Err  error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("running commands on %s: %v", e.Host, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// FailureKind names the error class for the tool failure envelope.
func (e *CommandError) FailureKind() string { return "device_command_error" }
