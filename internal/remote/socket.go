package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"sync"
	"time"
)

// DefaultRequestTimeout applies to requests whose context has no deadline
const DefaultRequestTimeout = 5 * time.Second

var errConnectionClosed = errors.New("connection closed")

type result struct {
	resp Response
	err  error
}

// SocketClient talks to the store daemon over a unix socket.
// Requests are JSON lines paired with responses by id, so one connection
// serves concurrent callers. A lost connection is re-established on the
// next request with exponential backoff.
type SocketClient struct {
	socketPath string
	timeout    time.Duration

	mu            sync.Mutex
	conn          net.Conn
	encoder       *json.Encoder
	pending       map[uint64]chan result
	nextID        uint64
	connectedOnce bool
	closed        bool

	// Reconnection configuration
	maxRetries int
	baseDelay  time.Duration
}

// NewSocketClient creates a client but does not connect.
// A non-positive timeout selects DefaultRequestTimeout, which
// MINITRELLO_REQUEST_TIMEOUT_MS overrides.
func NewSocketClient(socketPath string, timeout time.Duration) (*SocketClient, error) {
	if socketPath == "" {
		return nil, fmt.Errorf("socket path is required")
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
		if envVal := os.Getenv("MINITRELLO_REQUEST_TIMEOUT_MS"); envVal != "" {
			if parsed, err := strconv.Atoi(envVal); err == nil && parsed > 0 {
				timeout = time.Duration(parsed) * time.Millisecond
			}
		}
	}

	return &SocketClient{
		socketPath: socketPath,
		timeout:    timeout,
		pending:    make(map[uint64]chan result),
		maxRetries: 3,
		baseDelay:  100 * time.Millisecond,
	}, nil
}

// Connect establishes a connection to the daemon socket.
func (c *SocketClient) Connect(ctx context.Context) error {
	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		_ = conn.Close()
		return errConnectionClosed
	}
	if c.conn != nil {
		// another caller connected first
		_ = conn.Close()
		return nil
	}
	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.connectedOnce = true

	go c.readLoop(conn, json.NewDecoder(conn))
	return nil
}

// Query runs a read operation on the daemon
func (c *SocketClient) Query(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	return c.roundTrip(ctx, Message{
		Type:    MsgRequest,
		Request: &Request{Kind: KindQuery, Name: name, Args: args},
	})
}

// Mutate runs a write operation on the daemon
func (c *SocketClient) Mutate(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	return c.roundTrip(ctx, Message{
		Type:    MsgRequest,
		Request: &Request{Kind: KindMutate, Name: name, Args: args},
	})
}

// Metrics fetches the daemon's counters as JSON
func (c *SocketClient) Metrics(ctx context.Context) (json.RawMessage, error) {
	return c.roundTrip(ctx, Message{Type: MsgMetrics})
}

func (c *SocketClient) roundTrip(ctx context.Context, msg Message) (json.RawMessage, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.ensureConnected(ctx); err != nil {
		return nil, ClassifyTransportError(err)
	}

	ch := make(chan result, 1)
	c.mu.Lock()
	if c.conn == nil {
		c.mu.Unlock()
		return nil, ClassifyTransportError(errConnectionClosed)
	}
	c.nextID++
	id := c.nextID
	c.pending[id] = ch

	msg.Version = ProtocolVersion
	msg.ID = id
	// Set a short write deadline to detect dead connections
	err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err == nil {
		err = c.encoder.Encode(msg)
	}
	if err != nil {
		delete(c.pending, id)
		c.failPendingLocked(c.conn, err)
		c.mu.Unlock()
		return nil, ClassifyTransportError(err)
	}
	c.mu.Unlock()

	select {
	case res := <-ch:
		if res.err != nil {
			return nil, ClassifyTransportError(res.err)
		}
		if res.resp.Error != nil {
			return nil, res.resp.Error
		}
		return res.resp.Data, nil
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, ClassifyTransportError(ctx.Err())
	}
}

// ensureConnected dials on first use. After a lost connection it retries
// with exponential backoff.
func (c *SocketClient) ensureConnected(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errConnectionClosed
	}
	if c.conn != nil {
		c.mu.Unlock()
		return nil
	}
	reconnecting := c.connectedOnce
	c.mu.Unlock()

	err := c.Connect(ctx)
	if err == nil || !reconnecting {
		return err
	}
	return c.reconnect(ctx, err)
}

// reconnect attempts to reconnect to the daemon with exponential backoff.
// It tries up to maxRetries times, doubling the delay each time.
func (c *SocketClient) reconnect(ctx context.Context, lastErr error) error {
	delay := c.baseDelay

	for i := 0; i < c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			err := c.Connect(ctx)
			if err == nil {
				slog.Info("reconnected to daemon", "attempt", i+1, "max", c.maxRetries)
				return nil
			}
			lastErr = err
			slog.Debug("reconnection attempt failed", "attempt", i+1, "max", c.maxRetries, "retry_in", delay)
			delay *= 2
		}
	}
	return lastErr
}

// readLoop delivers responses to waiting callers and answers daemon pings.
func (c *SocketClient) readLoop(conn net.Conn, decoder *json.Decoder) {
	for {
		var msg Message
		if err := decoder.Decode(&msg); err != nil {
			c.mu.Lock()
			c.failPendingLocked(conn, err)
			c.mu.Unlock()
			return
		}

		switch msg.Type {
		case MsgResponse:
			c.mu.Lock()
			ch, ok := c.pending[msg.ID]
			delete(c.pending, msg.ID)
			c.mu.Unlock()
			if !ok {
				continue
			}
			if msg.Response == nil {
				ch <- result{err: &TransportError{Code: ErrBadResponse, Message: "Empty response from daemon"}}
				continue
			}
			ch <- result{resp: *msg.Response}

		case MsgPing:
			c.mu.Lock()
			if c.conn == conn {
				if err := c.encoder.Encode(Message{Version: ProtocolVersion, Type: MsgPong}); err != nil && !isConnectionError(err) {
					slog.Warn("failed to send pong", "error", err)
				}
			}
			c.mu.Unlock()
		}
	}
}

// failPendingLocked fails every waiting request if conn is still current.
// Callers hold mu.
func (c *SocketClient) failPendingLocked(conn net.Conn, err error) {
	if c.conn != conn {
		return
	}
	if !c.closed && !isConnectionError(err) {
		slog.Warn("daemon connection lost", "error", err)
	}
	c.dropLocked(conn)
	for id, ch := range c.pending {
		ch <- result{err: fmt.Errorf("%w: %w", errConnectionClosed, err)}
		delete(c.pending, id)
	}
}

// dropLocked closes conn and forgets it. Callers hold mu.
func (c *SocketClient) dropLocked(conn net.Conn) {
	if c.conn == conn {
		c.conn = nil
		c.encoder = nil
	}
	if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		slog.Debug("error closing daemon connection", "error", err)
	}
}

// Close closes the connection to the daemon. Waiting requests fail.
func (c *SocketClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.conn != nil {
		c.failPendingLocked(c.conn, errConnectionClosed)
	}
	return nil
}
