package output

import "context"

type UserInteractionPort interface {
	AskDestination(ctx context.Context) (string, error)

	ShowIteration(ctx context.Context, iteration, maxIterations int)
	ShowToolStart(ctx context.Context, toolName, input string)
	ShowToolResult(ctx context.Context, toolName, result string, isError bool)
}
