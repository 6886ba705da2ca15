package executor

import (
	"context"
	"fmt"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"
	"travel-agent/internal/domain/errorsx"
	"travel-agent/internal/infrastructure/prompts"
)

func (uc *UseCase) runAgent(ctx context.Context, resp *entity.AgentResponse) error {
	systemPrompt, err := prompts.GenerateSystemPrompt(uc.cfg.SystemPrompt, uc.tools)
	if err != nil {
		return fmt.Errorf("failed to render system prompt: %w", err)
	}

	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: systemPrompt},
		{Role: entity.RoleUser, Content: resp.Input},
	}

	toolDefs := uc.tools.Definitions()

	for iteration := 1; iteration <= uc.cfg.MaxIterations; iteration++ {
		uc.logger.Debug("Starting iteration", "iteration", iteration)
		uc.ui.ShowIteration(ctx, iteration, uc.cfg.MaxIterations)

		chatResp, err := uc.chat(ctx, output.ChatRequest{
			Messages: messages,
			Tools:    toolDefs,
		})
		if err != nil {
			return err
		}

		messages = append(messages, chatResp.Message)
		resp.Iterations = iteration

		if len(chatResp.Message.ToolCalls) == 0 {
			resp.Output = chatResp.Message.Content
			for _, name := range pipelineTools {
				if !resp.Called(name) {
					uc.logger.Warn("Model answered without calling tool", "name", name)
				}
			}
			return nil
		}

		for _, tc := range chatResp.Message.ToolCalls {
			result := uc.invokeTool(ctx, tc.ID, entity.ToolName(tc.Name), tc.Arguments)
			resp.IntermediateSteps = append(resp.IntermediateSteps, result)

			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name,
				Content:    truncateObservation(result.Output),
			})
		}
	}

	return errorsx.Wrap(fmt.Errorf("max iterations (%d) exceeded", uc.cfg.MaxIterations), errorsx.ReasonLLMLoop)
}
