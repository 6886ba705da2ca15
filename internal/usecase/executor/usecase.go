package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"travel-agent/internal/application/port/input"
	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"
	"travel-agent/internal/domain/errorsx"
	"travel-agent/internal/infrastructure/prompts"

	"github.com/google/uuid"
)

var _ input.TaskExecutor = (*UseCase)(nil)

const (
	DefaultMaxIterations = 10
	maxObservationLen    = 20000
)

var ErrEmptyDestination = errors.New("destination is empty")

type Config struct {
	Mode          entity.AgentMode
	MaxIterations int
	Temperature   float32

	// SystemPrompt drives agent mode; SynthesisTemplate is rendered with
	// prompts.SynthesisPromptData in pipeline mode.
	SystemPrompt      string
	SynthesisTemplate string
}

func DefaultConfig() Config {
	return Config{
		Mode:              entity.AgentModePipeline,
		MaxIterations:     DefaultMaxIterations,
		SystemPrompt:      prompts.SystemPrompt,
		SynthesisTemplate: prompts.SynthesisPrompt,
	}
}

type UseCase struct {
	llm    output.LLMPort
	tools  output.ToolRegistry
	ui     output.UserInteractionPort
	logger output.LoggerPort
	cfg    Config
}

func New(
	llm output.LLMPort,
	tools output.ToolRegistry,
	ui output.UserInteractionPort,
	logger output.LoggerPort,
	cfg Config,
) *UseCase {
	if cfg.Mode == "" {
		cfg.Mode = entity.AgentModePipeline
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	return &UseCase{
		llm:    llm,
		tools:  tools,
		ui:     ui,
		logger: logger,
		cfg:    cfg,
	}
}

func (uc *UseCase) Execute(ctx context.Context, destination string) (*entity.AgentResponse, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, ErrEmptyDestination
	}

	resp := &entity.AgentResponse{
		RunID:             uuid.NewString(),
		Mode:              uc.cfg.Mode,
		Destination:       destination,
		Input:             prompts.UserInput(destination),
		IntermediateSteps: []entity.ToolResult{},
		StartedAt:         time.Now().UTC(),
	}

	uc.logger.Info("Run started", "run_id", resp.RunID, "mode", resp.Mode, "destination", destination)

	var err error
	switch uc.cfg.Mode {
	case entity.AgentModePipeline:
		err = uc.runPipeline(ctx, resp)
	case entity.AgentModeAgent:
		err = uc.runAgent(ctx, resp)
	default:
		err = errorsx.Wrap(fmt.Errorf("unknown agent mode %q", uc.cfg.Mode), errorsx.ReasonConfig)
	}

	resp.FinishedAt = time.Now().UTC()
	if err != nil {
		uc.logger.Error("Run failed", "run_id", resp.RunID, "error", err, "reason", errorsx.Reason(err))
		return nil, err
	}

	uc.logger.Info("Run finished",
		"run_id", resp.RunID,
		"iterations", resp.Iterations,
		"steps", len(resp.IntermediateSteps),
		"duration", resp.FinishedAt.Sub(resp.StartedAt).String(),
	)
	return resp, nil
}

func (uc *UseCase) chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	req.Temperature = uc.cfg.Temperature
	resp, err := uc.llm.Chat(ctx, req)
	if err != nil {
		return nil, errorsx.Wrap(fmt.Errorf("llm request failed: %w", err), errorsx.ReasonLLMGenerate)
	}
	uc.logger.Debug("LLM responded",
		"toolCalls", len(resp.Message.ToolCalls),
		"promptTokens", resp.Usage.PromptTokens,
		"completionTokens", resp.Usage.CompletionTokens,
	)
	return resp, nil
}

func (uc *UseCase) invokeTool(ctx context.Context, callID string, name entity.ToolName, args string) entity.ToolResult {
	uc.ui.ShowToolStart(ctx, name.String(), args)
	start := time.Now()

	var result entity.ToolResult
	tool, ok := uc.tools.Get(name)
	if !ok {
		uc.logger.Warn("Unknown tool called", "name", name)
		result = entity.Failure(name, args, entity.ToolError{
			Kind:    entity.ToolErrorUnknownTool,
			Message: fmt.Sprintf("unknown tool '%s'", name),
		})
	} else {
		uc.logger.Info("Executing tool", "name", name, "args", args)
		result = tool.Invoke(ctx, args)
	}

	result = result.WithTiming(start)
	result.CallID = callID

	uc.ui.ShowToolResult(ctx, name.String(), result.Output, result.IsError())
	uc.logger.Debug("Tool completed",
		"name", name,
		"status", result.Status,
		"resultLen", len(result.Output),
		"durationMs", result.DurationMS,
	)
	return result
}

func truncateObservation(s string) string {
	if len(s) <= maxObservationLen {
		return s
	}
	cut := maxObservationLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n... (truncated)"
}
