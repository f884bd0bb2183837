package remote

import "encoding/json"

// documents are the GraphQL documents sent for each operation. The store
// dispatches on operationName; the documents keep the requests valid for a
// GraphQL backend exposing the same fields.
var documents = map[string]string{
	OpBoards: `query boards { boards { id title } }`,
	OpColumns: `query columns($board: ID) {
  columns(board: $board) { id title board order }
}`,
	OpCards: `query cards($column: ID) {
  cards(column: $column) { id title content column created }
}`,
	OpAddBoard: `mutation addBoard($title: String!) {
  addBoard(title: $title) { board { id title } }
}`,
	OpAddColumn: `mutation addColumn($title: String!, $board: String!, $order: Int!) {
  addColumn(title: $title, board: $board, order: $order) { column { id title board order } }
}`,
	OpAddCard: `mutation addCard($title: String!, $content: String, $column: String!) {
  addCard(title: $title, content: $content, column: $column) { card { id title content column created } }
}`,
	OpEditCard: `mutation editCard($id: ID!, $title: String!, $content: String) {
  editCard(id: $id, title: $title, content: $content) { card { id title content column created } }
}`,
	OpRemoveCard: `mutation removeCard($id: ID!) {
  removeCard(id: $id) { ok }
}`,
	OpRemoveColumn: `mutation removeColumn($id: ID!) {
  removeColumn(id: $id) { ok }
}`,
	OpUpdateCardStatus: `mutation updateCardStatus($id: ID!, $column: String!) {
  updateCardStatus(id: $id, column: $column) { card { id title content column created } }
}`,
}

// Document returns the GraphQL document for an operation
func Document(name string) (string, bool) {
	doc, ok := documents[name]
	return doc, ok
}

// GraphQLRequest is the body POSTed to the HTTP endpoint
type GraphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// GraphQLErrorExtensions carries the machine-readable error code
type GraphQLErrorExtensions struct {
	Code string `json:"code,omitempty"`
}

// GraphQLError is one entry of a response's errors list
type GraphQLError struct {
	Message    string                  `json:"message"`
	Extensions *GraphQLErrorExtensions `json:"extensions,omitempty"`
}

// GraphQLResponse holds data keyed by operation name, or errors
type GraphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data,omitempty"`
	Errors []GraphQLError             `json:"errors,omitempty"`
}
