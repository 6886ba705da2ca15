package input

import (
	"context"

	"travel-agent/internal/domain/entity"
)

// TaskExecutor turns a destination into a travel recommendation.
type TaskExecutor interface {
	Execute(ctx context.Context, destination string) (*entity.AgentResponse, error)
}
