package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 10 << 20

// HTTPClient posts operations to a GraphQL-style HTTP endpoint.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClient creates a client for endpoint. A non-positive timeout selects
// DefaultRequestTimeout.
func NewHTTPClient(endpoint string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", endpoint)
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &HTTPClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Query runs a read operation
func (c *HTTPClient) Query(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	if !IsQuery(name) {
		return nil, fmt.Errorf("unknown query %q", name)
	}
	return c.post(ctx, name, args)
}

// Mutate runs a write operation
func (c *HTTPClient) Mutate(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	if !IsMutation(name) {
		return nil, fmt.Errorf("unknown mutation %q", name)
	}
	return c.post(ctx, name, args)
}

func (c *HTTPClient) post(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	doc, _ := Document(name)
	body, err := json.Marshal(GraphQLRequest{Query: doc, OperationName: name, Variables: args})
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, ClassifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, ClassifyTransportError(err)
	}

	var gr GraphQLResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return nil, &TransportError{
			Code:    ErrBadResponse,
			Message: fmt.Sprintf("Unreadable response (HTTP %d)", resp.StatusCode),
			Hint:    "Check remote.endpoint points at a mini-trello API",
			Err:     err,
		}
	}
	if len(gr.Errors) > 0 {
		first := gr.Errors[0]
		code := CodeInternal
		if first.Extensions != nil && first.Extensions.Code != "" {
			code = first.Extensions.Code
		}
		return nil, &RemoteError{Code: code, Message: first.Message}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &TransportError{
			Code:    ErrBadResponse,
			Message: fmt.Sprintf("HTTP %d from store", resp.StatusCode),
		}
	}

	data, ok := gr.Data[name]
	if !ok {
		return nil, &TransportError{
			Code:    ErrBadResponse,
			Message: fmt.Sprintf("Response has no data for %s", name),
		}
	}
	return data, nil
}
