package executor

import (
	"context"
	"encoding/json"
	"fmt"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"
	"travel-agent/internal/infrastructure/prompts"

	"github.com/google/uuid"
)

// pipelineTools run in this order on every pipeline run.
var pipelineTools = []entity.ToolName{
	entity.ToolGetWeather,
	entity.ToolSearchAttractions,
}

func (uc *UseCase) runPipeline(ctx context.Context, resp *entity.AgentResponse) error {
	data := prompts.SynthesisPromptData{Destination: resp.Destination}

	for _, name := range pipelineTools {
		if err := ctx.Err(); err != nil {
			return err
		}

		result := uc.invokeTool(ctx, "call_"+uuid.NewString(), name, resp.Destination)
		resp.IntermediateSteps = append(resp.IntermediateSteps, result)

		switch name {
		case entity.ToolGetWeather:
			if result.IsError() {
				data.WeatherError = describeFailure(result)
			} else {
				data.WeatherJSON = weatherForPrompt(result)
			}
		case entity.ToolSearchAttractions:
			if result.IsError() {
				data.AttractionsError = describeFailure(result)
			} else {
				data.Attractions = result.Output
				data.AttractionCount = len(result.Attractions)
			}
		}
	}

	systemPrompt, err := prompts.GenerateSynthesisPrompt(uc.cfg.SynthesisTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render synthesis prompt: %w", err)
	}

	uc.ui.ShowIteration(ctx, 1, 1)
	chatResp, err := uc.chat(ctx, output.ChatRequest{
		Messages: []entity.Message{
			{Role: entity.RoleSystem, Content: systemPrompt},
			{Role: entity.RoleUser, Content: resp.Input},
		},
	})
	if err != nil {
		return err
	}

	resp.Output = chatResp.Message.Content
	resp.Iterations = 1
	return nil
}

// weatherForPrompt indents the decoded summary for the synthesis prompt and
// falls back to the raw tool output when no summary was attached.
func weatherForPrompt(result entity.ToolResult) string {
	if result.Weather == nil {
		return result.Output
	}
	data, err := json.MarshalIndent(result.Weather, "", "  ")
	if err != nil {
		return result.Output
	}
	return string(data)
}

func describeFailure(result entity.ToolResult) string {
	if result.Error == nil {
		return result.Output
	}
	if result.Error.Details != nil {
		return fmt.Sprintf("%s (details: %s)", result.Error.Message, *result.Error.Details)
	}
	return result.Error.Message
}
