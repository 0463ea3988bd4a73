package output

import (
	"errors"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// recoverableError matches models.RecoverableError without importing models,
// keeping this package dependency-light.
type recoverableError interface {
	error
	ErrorCode() string
	Context() map[string]string
	SuggestedAction() string
}

// Response represents a standard JSON response
type Response struct {
	SchemaVersion   string            `json:"schema_version"`
	Success         bool              `json:"success"`
	Data            interface{}       `json:"data,omitempty"`
	Error           string            `json:"error,omitempty"`
	ErrorCode       string            `json:"error_code,omitempty"`
	ErrorContext    map[string]string `json:"error_context,omitempty"`
	SuggestedAction string            `json:"suggested_action,omitempty"`
}

// Success wraps a successful response with data
func Success(data interface{}) Response {
	return Response{
		SchemaVersion: "v1",
		Success:       true,
		Data:          data,
	}
}

// Error wraps an error in a response. Recoverable errors carry their
// structured code, context, and suggested remediation into the envelope.
func Error(err error) Response {
	resp := Response{
		SchemaVersion: "v1",
		Success:       false,
		Error:         err.Error(),
	}

	var rec recoverableError
	if errors.As(err, &rec) {
		resp.ErrorCode = rec.ErrorCode()
		resp.ErrorContext = rec.Context()
		resp.SuggestedAction = rec.SuggestedAction()
	}
	return resp
}

// Config controls where and how JSON is written.
type Config struct {
	Writer io.Writer
	Pretty bool
}

// DefaultConfig writes compact JSON to stdout. Pretty printing for humans is
// enabled via env var: DREAMOPS_PRETTY_JSON=1.
func DefaultConfig() Config {
	pretty := os.Getenv("DREAMOPS_PRETTY_JSON") == "1" || os.Getenv("DREAMOPS_PRETTY_JSON") == "true"
	return Config{Writer: os.Stdout, Pretty: pretty}
}

// PrintWith prints a value as JSON using the given config.
func PrintWith(cfg Config, v interface{}) error {
	enc := json.NewEncoder(cfg.Writer)
	if cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// Print prints a value as JSON to stdout
func Print(v interface{}) error {
	return PrintWith(DefaultConfig(), v)
}

// PrintSuccess prints a success response
func PrintSuccess(data interface{}) error {
	return Print(Success(data))
}

// PrintError prints an error response
func PrintError(err error) error {
	return Print(Error(err))
}

// Keep output package focused: commands should handle human-readable formatting.
