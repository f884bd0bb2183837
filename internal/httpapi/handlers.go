// Package httpapi exposes a board store as a GraphQL-style HTTP endpoint.
// Requests are routed on operationName; the query document is not parsed.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"

	"github.com/juanbolano/mini-trello/internal/remote"
)

// maxRequestBytes caps the size of an operation body
const maxRequestBytes = 1 << 20

// Register wires up all routes on the provided Echo instance.
func Register(e *echo.Echo, store remote.Store, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	h := postOperation(store, logger)
	e.POST("/graphql", h)
	e.POST("/", h)
	e.GET("/healthz", healthz(store))
}

func healthz(store remote.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := store.Query(c.Request().Context(), remote.OpBoards, nil); err != nil {
			return c.String(http.StatusServiceUnavailable, err.Error())
		}
		return c.NoContent(http.StatusOK)
	}
}

func postOperation(store remote.Store, logger *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		lr := io.LimitReader(c.Request().Body, maxRequestBytes)
		var req remote.GraphQLRequest
		if err := sonic.ConfigStd.NewDecoder(lr).Decode(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse(remote.CodeBadRequest, "invalid body"))
		}

		name := req.OperationName
		var (
			data json.RawMessage
			err  error
		)
		switch {
		case remote.IsQuery(name):
			data, err = store.Query(ctx, name, req.Variables)
		case remote.IsMutation(name):
			data, err = store.Mutate(ctx, name, req.Variables)
		default:
			return c.JSON(http.StatusBadRequest, errorResponse(remote.CodeBadRequest, "unknown operation "+name))
		}

		if err != nil {
			var re *remote.RemoteError
			if errors.As(err, &re) {
				return c.JSON(http.StatusOK, errorResponse(re.Code, re.Message))
			}
			logger.Error("operation failed", "operation", name, "error", err)
			return c.JSON(http.StatusOK, errorResponse(remote.CodeInternal, err.Error()))
		}

		return c.JSON(http.StatusOK, remote.GraphQLResponse{
			Data: map[string]json.RawMessage{name: data},
		})
	}
}

func errorResponse(code, message string) remote.GraphQLResponse {
	return remote.GraphQLResponse{Errors: []remote.GraphQLError{{
		Message:    message,
		Extensions: &remote.GraphQLErrorExtensions{Code: code},
	}}}
}
