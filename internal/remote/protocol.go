package remote

import (
	"encoding/json"
	"fmt"
)

// ProtocolVersion is bumped on incompatible changes to Message
const ProtocolVersion = 1

// Message types on the daemon socket
const (
	MsgRequest  = "request"
	MsgResponse = "response"
	MsgPing     = "ping"
	MsgPong     = "pong"
	MsgMetrics  = "metrics"
)

// Request kinds
const (
	KindQuery  = "query"
	KindMutate = "mutate"
)

// Request asks the daemon to run one named operation
type Request struct {
	Kind string         `json:"kind"`
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// Response carries either the operation result or an error
type Response struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error *RemoteError    `json:"error,omitempty"`
}

// Message is one JSON line on the daemon socket.
// ID pairs a response with its request; pings carry no ID.
type Message struct {
	Version  int       `json:"version"`
	Type     string    `json:"type"`
	ID       uint64    `json:"id,omitempty"`
	Request  *Request  `json:"request,omitempty"`
	Response *Response `json:"response,omitempty"`
}

// Remote error codes
const (
	CodeValidation = "VALIDATION"
	CodeNotFound   = "NOT_FOUND"
	CodeBadRequest = "BAD_REQUEST"
	CodeInternal   = "INTERNAL"
)

// RemoteError is an error reported by the store for one operation
type RemoteError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
