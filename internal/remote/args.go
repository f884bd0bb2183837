package remote

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

func badRequest(format string, a ...any) *RemoteError {
	return &RemoteError{Code: CodeBadRequest, Message: fmt.Sprintf(format, a...)}
}

// StringArg returns a required string argument
func StringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", badRequest("missing argument %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", badRequest("argument %q must be a string", key)
	}
	return s, nil
}

// OptionalStringArg returns a string argument or "" when absent
func OptionalStringArg(args map[string]any, key string) (string, error) {
	if v, ok := args[key]; !ok || v == nil {
		return "", nil
	}
	return StringArg(args, key)
}

// IntArg returns a required integer argument. Arguments decoded from JSON
// arrive as float64 or json.Number and must be integral.
func IntArg(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, badRequest("missing argument %q", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, badRequest("argument %q must be an integer", key)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, badRequest("argument %q must be an integer", key)
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, badRequest("argument %q must be an integer", key)
		}
		return i, nil
	default:
		return 0, badRequest("argument %q must be an integer", key)
	}
}
