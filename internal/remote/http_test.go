package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPClient_PostsOperation(t *testing.T) {
	var got GraphQLRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"updateCardStatus":{"card":{"id":"c1","column":"doing"}}}}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewHTTPClient failed: %v", err)
	}

	raw, err := client.Mutate(context.Background(), OpUpdateCardStatus, map[string]any{"id": "c1", "column": "doing"})
	if err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}
	if string(raw) != `{"card":{"id":"c1","column":"doing"}}` {
		t.Errorf("Unexpected data: %s", raw)
	}
	if got.OperationName != OpUpdateCardStatus {
		t.Errorf("Expected operationName %s, got %s", OpUpdateCardStatus, got.OperationName)
	}
	if !strings.Contains(got.Query, "updateCardStatus(id: $id, column: $column)") {
		t.Errorf("Expected GraphQL document, got %q", got.Query)
	}
	if got.Variables["column"] != "doing" {
		t.Errorf("Expected variables to be sent, got %v", got.Variables)
	}
}

func TestHTTPClient_GraphQLError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":[{"message":"title cannot be empty","extensions":{"code":"VALIDATION"}}]}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewHTTPClient failed: %v", err)
	}

	_, err = client.Mutate(context.Background(), OpAddBoard, map[string]any{"title": ""})
	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("Expected RemoteError, got %v", err)
	}
	if re.Code != CodeValidation || re.Message != "title cannot be empty" {
		t.Errorf("Unexpected remote error: %+v", re)
	}
}

func TestHTTPClient_BadResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not json", http.StatusOK, "<html>"},
		{"missing data", http.StatusOK, `{"data":{}}`},
		{"server error", http.StatusBadGateway, `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewHTTPClient(server.URL, 0)
			if err != nil {
				t.Fatalf("NewHTTPClient failed: %v", err)
			}
			_, err = client.Query(context.Background(), OpBoards, nil)
			var te *TransportError
			if !errors.As(err, &te) || te.Code != ErrBadResponse {
				t.Errorf("Expected ErrBadResponse, got %v", err)
			}
		})
	}
}

func TestHTTPClient_Validation(t *testing.T) {
	if _, err := NewHTTPClient("ftp://example.com", 0); err == nil {
		t.Error("Expected error for non-http scheme")
	}

	client, err := NewHTTPClient("http://127.0.0.1:1", 0)
	if err != nil {
		t.Fatalf("NewHTTPClient failed: %v", err)
	}
	if _, err := client.Query(context.Background(), OpAddBoard, nil); err == nil {
		t.Error("Expected error for mutation sent as query")
	}
	if _, err := client.Mutate(context.Background(), OpBoards, nil); err == nil {
		t.Error("Expected error for query sent as mutation")
	}
}
