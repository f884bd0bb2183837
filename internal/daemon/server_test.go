package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/juanbolano/mini-trello/internal/board"
	"github.com/juanbolano/mini-trello/internal/database"
	"github.com/juanbolano/mini-trello/internal/remote"
	"github.com/juanbolano/mini-trello/internal/remote/local"
)

// ============================================================================
// Test Helpers
// ============================================================================

// stubStore answers every operation with its name, or fails with err
type stubStore struct {
	err   error
	block chan struct{}
}

func (s *stubStore) answer(ctx context.Context, kind, name string) (json.RawMessage, error) {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return json.Marshal(kind + ":" + name)
}

func (s *stubStore) Query(ctx context.Context, name string, _ map[string]any) (json.RawMessage, error) {
	return s.answer(ctx, remote.KindQuery, name)
}

func (s *stubStore) Mutate(ctx context.Context, name string, _ map[string]any) (json.RawMessage, error) {
	return s.answer(ctx, remote.KindMutate, name)
}

func getTestSocketPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test-minitrello.sock")
}

func setupTestDaemon(t *testing.T, store remote.Store) (*Server, string) {
	t.Helper()
	socketPath := getTestSocketPath(t)

	server, err := NewServer(socketPath, store)
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}

	t.Cleanup(func() {
		_ = server.Shutdown()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() { _ = server.Start(ctx) }()

	// Wait for socket
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(socketPath); err == nil {
			return server, socketPath
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatal("Timeout waiting for daemon socket")
	return nil, ""
}

func connectRawClient(t *testing.T, socketPath string) (net.Conn, *json.Encoder, *json.Decoder) {
	t.Helper()

	conn, err := (&net.Dialer{}).DialContext(context.Background(), "unix", socketPath)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn, json.NewEncoder(conn), json.NewDecoder(conn)
}

// readResponse reads messages until the response with id arrives
func readResponse(t *testing.T, conn net.Conn, decoder *json.Decoder, id uint64) remote.Response {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg remote.Message
		if err := decoder.Decode(&msg); err != nil {
			t.Fatalf("Failed to read response %d: %v", id, err)
		}
		if msg.Type == remote.MsgResponse && msg.ID == id {
			if msg.Response == nil {
				t.Fatalf("Response %d has no body", id)
			}
			return *msg.Response
		}
	}
}

func waitForClients(t *testing.T, server *Server, want int32) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if server.Metrics().ConnectedClients.Load() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Expected %d connected clients, got %d", want, server.Metrics().ConnectedClients.Load())
}

// ============================================================================
// Server Creation Tests
// ============================================================================

func TestNewServer_Success(t *testing.T) {
	socketPath := getTestSocketPath(t)

	server, err := NewServer(socketPath, &stubStore{})
	if err != nil {
		t.Fatalf("Expected NewServer to succeed, got error: %v", err)
	}
	defer func() { _ = server.Shutdown() }()

	if _, err := os.Stat(socketPath); os.IsNotExist(err) {
		t.Error("Expected socket file to be created")
	}

	t.Logf("✓ Server created successfully at %s", socketPath)
}

func TestNewServer_RequiresStore(t *testing.T) {
	if _, err := NewServer(getTestSocketPath(t), nil); err == nil {
		t.Fatal("Expected error without a store")
	}
}

func TestNewServer_DirectoryCreation(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "subdirs", "minitrello.sock")

	server, err := NewServer(nestedPath, &stubStore{})
	if err != nil {
		t.Fatalf("Expected NewServer to create nested directories, got error: %v", err)
	}
	defer func() { _ = server.Shutdown() }()

	if _, err := os.Stat(nestedPath); os.IsNotExist(err) {
		t.Error("Expected socket file to be created in nested directory")
	}

	t.Logf("✓ Nested directories created successfully: %s", nestedPath)
}

func TestNewServer_StaleSocketCleanup(t *testing.T) {
	socketPath := getTestSocketPath(t)

	f, err := os.Create(socketPath)
	if err != nil {
		t.Fatalf("Failed to create stale socket file: %v", err)
	}
	_ = f.Close()

	server, err := NewServer(socketPath, &stubStore{})
	if err != nil {
		t.Fatalf("Expected NewServer to succeed after removing stale socket, got error: %v", err)
	}
	defer func() { _ = server.Shutdown() }()

	t.Logf("✓ Stale socket cleaned up successfully")
}

// ============================================================================
// Request Tests
// ============================================================================

func TestRequest_QueryAndMutate(t *testing.T) {
	server, socketPath := setupTestDaemon(t, &stubStore{})
	conn, encoder, decoder := connectRawClient(t, socketPath)

	requests := []remote.Message{
		{Version: remote.ProtocolVersion, Type: remote.MsgRequest, ID: 1, Request: &remote.Request{Kind: remote.KindQuery, Name: remote.OpBoards}},
		{Version: remote.ProtocolVersion, Type: remote.MsgRequest, ID: 2, Request: &remote.Request{Kind: remote.KindMutate, Name: remote.OpAddBoard}},
	}
	for _, msg := range requests {
		if err := encoder.Encode(msg); err != nil {
			t.Fatalf("Failed to send request: %v", err)
		}
	}

	got := map[uint64]string{}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for len(got) < 2 {
		var msg remote.Message
		if err := decoder.Decode(&msg); err != nil {
			t.Fatalf("Failed to read response: %v", err)
		}
		if msg.Type != remote.MsgResponse {
			continue
		}
		var s string
		_ = json.Unmarshal(msg.Response.Data, &s)
		got[msg.ID] = s
	}

	if got[1] != "query:boards" || got[2] != "mutate:addBoard" {
		t.Errorf("Unexpected responses: %v", got)
	}

	snapshot := server.Metrics().GetSnapshot()
	if snapshot.RequestsTotal != 2 || snapshot.MutationsTotal != 1 {
		t.Errorf("Unexpected metrics: %+v", snapshot)
	}

	t.Logf("✓ Requests answered by id")
}

func TestRequest_ErrorResponse(t *testing.T) {
	store := &stubStore{err: &remote.RemoteError{Code: remote.CodeNotFound, Message: "card not found"}}
	server, socketPath := setupTestDaemon(t, store)
	conn, encoder, decoder := connectRawClient(t, socketPath)

	_ = encoder.Encode(remote.Message{
		Version: remote.ProtocolVersion,
		Type:    remote.MsgRequest,
		ID:      7,
		Request: &remote.Request{Kind: remote.KindMutate, Name: remote.OpRemoveCard},
	})
	resp := readResponse(t, conn, decoder, 7)
	if resp.Error == nil || resp.Error.Code != remote.CodeNotFound {
		t.Fatalf("Expected NOT_FOUND error, got %+v", resp)
	}

	_ = encoder.Encode(remote.Message{Version: remote.ProtocolVersion, Type: remote.MsgRequest, ID: 8})
	resp = readResponse(t, conn, decoder, 8)
	if resp.Error == nil || resp.Error.Code != remote.CodeBadRequest {
		t.Errorf("Expected BAD_REQUEST for empty request, got %+v", resp)
	}

	if failed := server.Metrics().RequestsFailed.Load(); failed != 1 {
		t.Errorf("Expected 1 failed request, got %d", failed)
	}
}

func TestRequest_Metrics(t *testing.T) {
	_, socketPath := setupTestDaemon(t, &stubStore{})
	conn, encoder, decoder := connectRawClient(t, socketPath)

	_ = encoder.Encode(remote.Message{Version: remote.ProtocolVersion, Type: remote.MsgMetrics, ID: 1})
	resp := readResponse(t, conn, decoder, 1)

	var snapshot MetricsSnapshot
	if err := json.Unmarshal(resp.Data, &snapshot); err != nil {
		t.Fatalf("Failed to decode metrics: %v", err)
	}
	if snapshot.ConnectedClients != 1 {
		t.Errorf("Expected 1 connected client, got %d", snapshot.ConnectedClients)
	}
}

// ============================================================================
// Client Connection Tests
// ============================================================================

func TestClientDisconnection(t *testing.T) {
	server, socketPath := setupTestDaemon(t, &stubStore{})

	conn, _, _ := connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	_ = conn.Close()
	waitForClients(t, server, 0)

	t.Logf("✓ Client disconnected and cleaned up")
}

func TestHealth_PingAndStaleRemoval(t *testing.T) {
	socketPath := getTestSocketPath(t)
	server, err := NewServer(socketPath, &stubStore{})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	server.pingInterval = 20 * time.Millisecond
	server.staleAfter = 100 * time.Millisecond
	t.Cleanup(func() { _ = server.Shutdown() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = server.Start(ctx) }()

	// a client that never answers pings
	conn, _, decoder := connectRawClient(t, socketPath)
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var msg remote.Message
	if err := decoder.Decode(&msg); err != nil {
		t.Fatalf("Expected a ping, got error: %v", err)
	}
	if msg.Type != remote.MsgPing {
		t.Errorf("Expected ping, got %s", msg.Type)
	}

	waitForClients(t, server, 0)
	t.Logf("✓ Silent client pinged and removed as stale")
}

func TestShutdown_Idempotent(t *testing.T) {
	socketPath := getTestSocketPath(t)
	server, err := NewServer(socketPath, &stubStore{})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	if err := server.Shutdown(); err != nil {
		t.Errorf("First shutdown failed: %v", err)
	}
	if err := server.Shutdown(); err != nil {
		t.Errorf("Second shutdown should be idempotent, got error: %v", err)
	}
	if _, err := os.Stat(socketPath); !os.IsNotExist(err) {
		t.Error("Expected socket file to be removed after shutdown")
	}

	t.Logf("✓ Shutdown is idempotent")
}

func TestShutdown_UnblocksPendingRequest(t *testing.T) {
	store := &stubStore{block: make(chan struct{})}
	server, socketPath := setupTestDaemon(t, store)
	_, encoder, decoder := connectRawClient(t, socketPath)

	_ = encoder.Encode(remote.Message{
		Version: remote.ProtocolVersion,
		Type:    remote.MsgRequest,
		ID:      1,
		Request: &remote.Request{Kind: remote.KindQuery, Name: remote.OpBoards},
	})
	time.Sleep(50 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		_ = server.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown blocked on a pending request")
	}

	var msg remote.Message
	for decoder.Decode(&msg) == nil {
	}
}

// ============================================================================
// End-to-end
// ============================================================================

func TestSessionOverDaemon(t *testing.T) {
	db, err := database.OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, socketPath := setupTestDaemon(t, local.NewFromRepository(database.NewRepository(db)))

	client, err := remote.NewSocketClient(socketPath, 2*time.Second)
	if err != nil {
		t.Fatalf("NewSocketClient failed: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	session := board.NewSession(client)
	defer session.Close()

	created, err := session.AddBoard(ctx, "Sprint")
	if err != nil {
		t.Fatalf("AddBoard failed: %v", err)
	}
	if _, err := session.Open(ctx); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	todo, err := session.AddColumn(ctx, created.ID, "Todo", 0)
	if err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}
	done, err := session.AddColumn(ctx, created.ID, "Done", 1)
	if err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}
	card, err := session.AddCard(ctx, todo.ID, "Deploy", "")
	if err != nil {
		t.Fatalf("AddCard failed: %v", err)
	}

	tx, err := session.EndDrag(ctx, card.ID, todo.ID, done.ID)
	if err != nil || tx.State != board.Committed {
		t.Fatalf("Expected committed move, got %s: %v", tx.State, err)
	}

	_, err = session.EndDrag(ctx, card.ID, done.ID, "ghost-column")
	if !errors.Is(err, board.ErrNotFound) {
		t.Errorf("Expected ErrNotFound dropping on an unknown column, got %v", err)
	}

	if err := session.Reload(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	cards := session.CardsFor(done.ID)
	if len(cards) != 1 || cards[0].ID != card.ID {
		t.Errorf("Expected card in Done after reload, got %+v", cards)
	}

	t.Logf("✓ Session synchronized through the daemon")
}
