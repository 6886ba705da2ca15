package output

import (
	"context"

	"travel-agent/internal/domain/entity"
)

type WeatherPort interface {
	Forecast(ctx context.Context, destination string) (*entity.WeatherSummary, error)
}
