package remote

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"syscall"
)

// ErrorCode represents transport error types.
type ErrorCode int

const (
	ErrSocketNotFound ErrorCode = iota
	ErrSocketPermission
	ErrDaemonNotRunning
	ErrConnectionRefused
	ErrConnectionLost
	ErrRequestTimeout
	ErrEndpointUnreachable
	ErrBadResponse
)

var errorCodeNames = [...]string{
	ErrSocketNotFound:      "SOCKET_NOT_FOUND",
	ErrSocketPermission:    "SOCKET_PERMISSION",
	ErrDaemonNotRunning:    "DAEMON_NOT_RUNNING",
	ErrConnectionRefused:   "CONNECTION_REFUSED",
	ErrConnectionLost:      "CONNECTION_LOST",
	ErrRequestTimeout:      "REQUEST_TIMEOUT",
	ErrEndpointUnreachable: "ENDPOINT_UNREACHABLE",
	ErrBadResponse:         "BAD_RESPONSE",
}

func (c ErrorCode) String() string {
	if c >= 0 && int(c) < len(errorCodeNames) {
		return errorCodeNames[c]
	}
	return "TRANSPORT_ERROR"
}

// TransportError represents a structured transport error with context.
type TransportError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Err     error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Hint != "" {
		return e.Message + ". " + e.Hint
	}
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Suggestion returns the hint shown to users
func (e *TransportError) Suggestion() string {
	return e.Hint
}

// ClassifyTransportError maps common dial and I/O errors to structured TransportError types.
func ClassifyTransportError(err error) *TransportError {
	if err == nil {
		return nil
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &TransportError{
			Code:    ErrRequestTimeout,
			Message: "Request timed out",
			Hint:    "The store may be overloaded; raise remote.request_timeout in config.yaml",
			Err:     err,
		}
	}

	if errors.Is(err, os.ErrNotExist) {
		return &TransportError{
			Code:    ErrSocketNotFound,
			Message: "Socket file not found",
			Hint:    "Start daemon: minitrello-daemon",
			Err:     err,
		}
	}

	if errors.Is(err, os.ErrPermission) {
		return &TransportError{
			Code:    ErrSocketPermission,
			Message: "Permission denied",
			Hint:    "Check ~/.minitrello/ permissions: chmod 700 ~/.minitrello/",
			Err:     err,
		}
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno == syscall.ECONNREFUSED {
		return &TransportError{
			Code:    ErrConnectionRefused,
			Message: "Connection refused",
			Hint:    "Daemon may be crashed. Restart: minitrello-daemon",
			Err:     err,
		}
	}

	if isConnectionError(err) {
		return &TransportError{
			Code:    ErrConnectionLost,
			Message: "Connection to store lost",
			Hint:    "Retry the operation; the client reconnects automatically",
			Err:     err,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &TransportError{
			Code:    ErrEndpointUnreachable,
			Message: "Store endpoint unreachable",
			Hint:    "Check remote.endpoint in config.yaml",
			Err:     err,
		}
	}

	return &TransportError{
		Code:    ErrDaemonNotRunning,
		Message: "Daemon not running",
		Hint:    "Start daemon: minitrello-daemon",
		Err:     err,
	}
}

// isConnectionError checks if an error is a network connection error
func isConnectionError(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, errConnectionClosed)
}
