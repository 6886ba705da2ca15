package output

import (
	"context"

	"travel-agent/internal/domain/entity"
)

type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	Messages    []entity.Message
	Tools       []entity.ToolDefinition
	Temperature float32
}

type ChatResponse struct {
	Message entity.Message
	Usage   Usage
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
}
