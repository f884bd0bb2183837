package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
)

// OutputFormatter picks between JSON, quiet and human output.
// Out defaults to the process stdout at write time.
type OutputFormatter struct {
	JSON  bool
	Quiet bool
	Out   io.Writer
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out != nil {
		return f.Out
	}
	return os.Stdout
}

func (f *OutputFormatter) encode(v any) error {
	return sonic.ConfigStd.NewEncoder(f.out()).Encode(v)
}

// Emit writes a successful JSON envelope. fields sit next to "success".
func (f *OutputFormatter) Emit(fields map[string]any) error {
	envelope := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		envelope[k] = v
	}
	envelope["success"] = true
	return f.encode(envelope)
}

// Success prints data in the selected mode. Quiet mode prints only the ID
// when data has one.
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		if idGetter, ok := data.(interface{ GetID() string }); ok {
			_, err := fmt.Fprintln(f.out(), idGetter.GetID())
			return err
		}
	}
	if f.JSON {
		return f.Emit(map[string]any{"data": data})
	}
	_, err := fmt.Fprintf(f.out(), "%+v\n", data)
	return err
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion reports a failure. JSON goes to Out, human text to stderr.
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return f.encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(os.Stderr, "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}
