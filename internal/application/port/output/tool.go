package output

import (
	"context"

	"travel-agent/internal/domain/entity"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/tmc/langchaingo/tools"
)

// ToolPort is a single-input, single-output capability offered to the model.
// Call (from tools.Tool) returns the text payload and never an error;
// Invoke returns the same outcome as a tagged result.
type ToolPort interface {
	tools.Tool
	Parameters() *jsonschema.Schema
	Invoke(ctx context.Context, input string) entity.ToolResult
}

type ToolRegistry interface {
	Register(tool ToolPort)
	Get(name entity.ToolName) (ToolPort, bool)
	All() []ToolPort
	Definitions() []entity.ToolDefinition
}
