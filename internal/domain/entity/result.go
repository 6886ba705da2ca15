package entity

import (
	"encoding/json"
	"time"
)

type ToolResultStatus string

const (
	ToolResultOK    ToolResultStatus = "ok"
	ToolResultError ToolResultStatus = "error"
)

type ToolErrorKind string

const (
	ToolErrorInvalidInput      ToolErrorKind = "invalid_input"
	ToolErrorMissingCredential ToolErrorKind = "missing_credential"
	ToolErrorUpstreamHTTP      ToolErrorKind = "upstream_http"
	ToolErrorUnexpected        ToolErrorKind = "unexpected"
	ToolErrorUnknownTool       ToolErrorKind = "unknown_tool"
)

// ToolError is the error variant of a ToolResult. Details is only rendered
// for upstream HTTP failures, where a nil value means the body was empty.
type ToolError struct {
	Kind    ToolErrorKind `json:"kind"`
	Message string        `json:"message"`
	Details *string       `json:"details,omitempty"`
}

// Payload renders the error the way tools hand it to the model:
// {"error": "..."} plus "details" for upstream HTTP failures.
func (e ToolError) Payload() string {
	payload := map[string]any{"error": e.Message}
	if e.Kind == ToolErrorUpstreamHTTP {
		payload["details"] = e.Details
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return `{"error":"failed to encode tool error"}`
	}
	return string(data)
}

// ToolResult is the tagged outcome of one tool invocation. Output always
// holds the text payload; Weather and Attractions carry the decoded data
// for successful calls of the matching tool.
type ToolResult struct {
	CallID     string           `json:"call_id,omitempty"`
	Tool       ToolName         `json:"tool"`
	Input      string           `json:"input"`
	Status     ToolResultStatus `json:"status"`
	Output     string           `json:"output"`
	Error      *ToolError       `json:"error,omitempty"`
	DurationMS int64            `json:"duration_ms"`

	Weather     *WeatherSummary `json:"-"`
	Attractions []SearchResult  `json:"-"`
}

func Success(tool ToolName, input, output string) ToolResult {
	return ToolResult{
		Tool:   tool,
		Input:  input,
		Status: ToolResultOK,
		Output: output,
	}
}

func Failure(tool ToolName, input string, toolErr ToolError) ToolResult {
	return ToolResult{
		Tool:   tool,
		Input:  input,
		Status: ToolResultError,
		Output: toolErr.Payload(),
		Error:  &toolErr,
	}
}

func (r ToolResult) IsError() bool {
	return r.Status == ToolResultError
}

func (r ToolResult) WithTiming(start time.Time) ToolResult {
	r.DurationMS = time.Since(start).Milliseconds()
	return r
}
