// Package daemon serves the board store over a unix socket so several
// clients can share one database.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/juanbolano/mini-trello/internal/remote"
)

// client represents a connected client to the daemon
type client struct {
	conn      net.Conn
	send      chan remote.Message
	done      chan struct{}
	lastPong  time.Time
	mu        sync.Mutex // Protects lastPong
	closeOnce sync.Once  // Ensures done is closed only once
}

// Server represents the store daemon
type Server struct {
	socketPath       string
	listener         net.Listener
	store            remote.Store
	clients          map[*client]bool
	mu               sync.RWMutex
	ctx              context.Context
	cancel           context.CancelFunc
	metrics          *Metrics
	clientBufferSize int           // Configurable client send queue size
	inflight         chan struct{} // Bounds concurrently executing requests
	requestTimeout   time.Duration
	pingInterval     time.Duration
	staleAfter       time.Duration
	shutdownOnce     sync.Once
}

// getEnvInt reads an integer from an environment variable, returning defaultVal if not set or invalid
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// NewServer creates a new daemon server answering requests from store
func NewServer(socketPath string, store remote.Store) (*Server, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}

	// Ensure the directory exists
	dir := filepath.Dir(socketPath)
	if dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create socket directory: %w", err)
		}
	}

	// Remove stale socket file if it exists
	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Read sizes from environment variables (configurable for performance tuning)
	clientBuffer := getEnvInt("MINITRELLO_DAEMON_CLIENT_BUFFER", 16)
	maxInflight := getEnvInt("MINITRELLO_DAEMON_MAX_INFLIGHT", 32)

	return &Server{
		socketPath:       socketPath,
		listener:         listener,
		store:            store,
		clients:          make(map[*client]bool),
		ctx:              ctx,
		cancel:           cancel,
		metrics:          NewMetrics(),
		clientBufferSize: clientBuffer,
		inflight:         make(chan struct{}, maxInflight),
		requestTimeout:   30 * time.Second,
		pingInterval:     30 * time.Second,
		staleAfter:       90 * time.Second,
	}, nil
}

// Metrics returns the server's live counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start runs the daemon server until ctx is cancelled or Shutdown is called.
// It runs the accept loop and the health monitor.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("daemon starting", "socket", s.socketPath)

	// Create a combined context that cancels when either the daemon context or caller context is done
	combinedCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	acceptErr := make(chan error, 1)
	go func() {
		acceptErr <- s.acceptLoop(combinedCtx)
	}()

	go s.monitorHealth(combinedCtx)

	select {
	case <-combinedCtx.Done():
		slog.Info("daemon context cancelled, shutting down")
	case err := <-acceptErr:
		if err != nil {
			slog.Error("accept loop failed", "error", err)
		}
	}

	return s.Shutdown()
}

// acceptLoop accepts incoming client connections
func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// Set a deadline so we can check for context cancellation
		if ul, ok := s.listener.(*net.UnixListener); ok {
			if err := ul.SetDeadline(time.Now().Add(1 * time.Second)); err != nil {
				slog.Warn("error setting listener deadline", "error", err)
			}
		}

		conn, err := s.listener.Accept()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept error: %w", err)
		}

		c := &client{
			conn:     conn,
			send:     make(chan remote.Message, s.clientBufferSize),
			done:     make(chan struct{}),
			lastPong: time.Now(),
		}

		s.mu.Lock()
		s.clients[c] = true
		s.mu.Unlock()
		s.updateClientCount()

		slog.Debug("client connected", "clients", s.getClientCount())

		go s.handleClient(c)
		go s.clientWriter(c)
	}
}

// handleClient reads messages from a connected client
func (s *Server) handleClient(c *client) {
	defer func() {
		s.removeClient(c)
		slog.Debug("client disconnected", "clients", s.getClientCount())
	}()

	decoder := json.NewDecoder(c.conn)

	for {
		var msg remote.Message
		if err := decoder.Decode(&msg); err != nil {
			return
		}

		// Check protocol version - log warning if mismatch
		if msg.Version != 0 && msg.Version != remote.ProtocolVersion {
			slog.Warn("protocol version mismatch", "got", msg.Version, "want", remote.ProtocolVersion)
		}

		switch msg.Type {
		case remote.MsgRequest:
			if msg.Request == nil {
				s.reply(c, msg.ID, remote.Response{Error: &remote.RemoteError{
					Code:    remote.CodeBadRequest,
					Message: "request body missing",
				}})
				continue
			}
			s.dispatch(c, msg.ID, *msg.Request)

		case remote.MsgMetrics:
			data, err := json.Marshal(s.metrics.GetSnapshot())
			if err != nil {
				s.reply(c, msg.ID, remote.Response{Error: &remote.RemoteError{Code: remote.CodeInternal, Message: err.Error()}})
				continue
			}
			s.reply(c, msg.ID, remote.Response{Data: data})

		case remote.MsgPong:
			c.mu.Lock()
			c.lastPong = time.Now()
			c.mu.Unlock()
		}
	}
}

// dispatch runs one request on its own goroutine so a slow query does not
// hold up the client's other requests.
func (s *Server) dispatch(c *client, id uint64, req remote.Request) {
	select {
	case s.inflight <- struct{}{}:
	case <-c.done:
		return
	}

	go func() {
		defer func() { <-s.inflight }()

		ctx, cancel := context.WithTimeout(s.ctx, s.requestTimeout)
		defer cancel()

		var (
			data json.RawMessage
			err  error
		)
		switch req.Kind {
		case remote.KindQuery:
			data, err = s.store.Query(ctx, req.Name, req.Args)
		case remote.KindMutate:
			s.metrics.IncMutationsTotal()
			data, err = s.store.Mutate(ctx, req.Name, req.Args)
		default:
			err = &remote.RemoteError{Code: remote.CodeBadRequest, Message: fmt.Sprintf("unknown request kind %q", req.Kind)}
		}
		s.metrics.IncRequestsTotal()

		resp := remote.Response{Data: data}
		if err != nil {
			s.metrics.IncRequestsFailed()
			resp = remote.Response{Error: toRemoteError(err)}
			slog.Debug("request failed", "kind", req.Kind, "name", req.Name, "error", err)
		}
		s.reply(c, id, resp)
	}()
}

func toRemoteError(err error) *remote.RemoteError {
	var re *remote.RemoteError
	if errors.As(err, &re) {
		return re
	}
	return &remote.RemoteError{Code: remote.CodeInternal, Message: err.Error()}
}

// reply queues a response for the client. It waits for queue space unless
// the client goes away.
func (s *Server) reply(c *client, id uint64, resp remote.Response) {
	msg := remote.Message{
		Version:  remote.ProtocolVersion,
		Type:     remote.MsgResponse,
		ID:       id,
		Response: &resp,
	}
	select {
	case c.send <- msg:
	case <-c.done:
	}
}

// clientWriter sends messages to a client
func (s *Server) clientWriter(c *client) {
	encoder := json.NewEncoder(c.conn)

	for {
		select {
		case msg := <-c.send:
			if err := encoder.Encode(msg); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// monitorHealth sends ping messages and removes stale clients
func (s *Server) monitorHealth(ctx context.Context) {
	pingTicker := time.NewTicker(s.pingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-pingTicker.C:
			// Use two-phase locking to avoid deadlock: collect clients, then process
			s.mu.RLock()
			clients := make([]*client, 0, len(s.clients))
			for c := range s.clients {
				clients = append(clients, c)
			}
			s.mu.RUnlock()

			now := time.Now()
			pingMsg := remote.Message{Version: remote.ProtocolVersion, Type: remote.MsgPing}
			for _, c := range clients {
				c.mu.Lock()
				lastPong := c.lastPong
				c.mu.Unlock()

				if now.Sub(lastPong) > s.staleAfter {
					slog.Info("removing stale client", "last_pong_ago", now.Sub(lastPong))
					s.removeClient(c)
					continue
				}

				// Non-blocking send - a full queue means the client is busy, not dead
				select {
				case c.send <- pingMsg:
				default:
				}
			}
		}
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	s.shutdownOnce.Do(func() {
		slog.Info("shutting down daemon")

		s.cancel()

		if s.listener != nil {
			if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
				slog.Warn("error closing listener", "error", err)
			}
		}

		s.mu.Lock()
		clients := make([]*client, 0, len(s.clients))
		for c := range s.clients {
			clients = append(clients, c)
		}
		s.mu.Unlock()
		for _, c := range clients {
			s.removeClient(c)
		}

		if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove socket file", "error", err)
		}
	})

	return nil
}

// Helper methods

func (s *Server) getClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) updateClientCount() {
	s.metrics.SetConnectedClients(int32(s.getClientCount()))
}

// removeClient safely removes a client from the server
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()

	c.closeOnce.Do(func() {
		close(c.done)
		if err := c.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			slog.Debug("error closing client connection", "error", err)
		}
	})

	s.updateClientCount()
}
