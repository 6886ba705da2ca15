package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

var _ output.LLMPort = (*GeminiAdapter)(nil)

// GeminiAdapter talks to Gemini through its OpenAI-compatible endpoint. Any
// other OpenAI-compatible provider works by overriding BaseURL and Model.
type GeminiAdapter struct {
	client *openai.Client
	model  string
	logger output.LoggerPort
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Logger  output.LoggerPort
}

const (
	DefaultModel   = "gemini-1.5-flash"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
)

func DefaultConfig(apiKey, model string) Config {
	if model == "" {
		model = DefaultModel
	}
	return Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: DefaultBaseURL,
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.logger != nil {
		var bodyBytes []byte
		if req.Body != nil {
			bodyBytes, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		var requestData map[string]interface{}
		if len(bodyBytes) > 0 {
			_ = json.Unmarshal(bodyBytes, &requestData)
		}

		t.logger.Debug("HTTP Request",
			"method", req.Method,
			"url", req.URL.String(),
			"body", requestData,
		)
	}

	resp, err := t.base.RoundTrip(req)

	if t.logger != nil && resp != nil {
		t.logger.Debug("HTTP Response",
			"status", resp.Status,
			"statusCode", resp.StatusCode,
		)
	}

	return resp, err
}

func NewGeminiAdapter(cfg Config) *GeminiAdapter {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	if cfg.Logger != nil {
		config.HTTPClient = &http.Client{
			Transport: &loggingTransport{
				base:   http.DefaultTransport,
				logger: cfg.Logger,
			},
		}
	}

	return &GeminiAdapter{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

func (a *GeminiAdapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    convertMessages(req.Messages),
		Temperature: wireTemperature(req.Temperature),
	}
	if len(req.Tools) > 0 {
		chatReq.Tools = convertTools(req.Tools)
		chatReq.ToolChoice = "auto"
	}

	resp, err := a.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return &output.ChatResponse{
		Message: convertResponseMessage(resp.Choices[0].Message),
		Usage: output.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

// wireTemperature keeps a zero temperature on the wire; go-openai omits a
// literal 0 and the provider would fall back to its own default.
func wireTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

func convertMessages(messages []entity.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		oaiMsg := openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}

		if msg.ToolCallID != "" {
			oaiMsg.ToolCallID = msg.ToolCallID
		}
		if msg.Name != "" {
			oaiMsg.Name = msg.Name
		}

		for _, tc := range msg.ToolCalls {
			oaiMsg.ToolCalls = append(oaiMsg.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}

		result = append(result, oaiMsg)
	}
	return result
}

func convertTools(tools []entity.ToolDefinition) []openai.Tool {
	result := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		result = append(result, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return result
}

func convertResponseMessage(msg openai.ChatCompletionMessage) entity.Message {
	result := entity.Message{
		Role:    entity.MessageRole(msg.Role),
		Content: msg.Content,
	}

	for _, tc := range msg.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, entity.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	return result
}
