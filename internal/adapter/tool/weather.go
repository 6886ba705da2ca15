package tool

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"
	"travel-agent/internal/domain/errorsx"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/tmc/langchaingo/tools"
)

var (
	_ output.ToolPort = (*WeatherTool)(nil)
	_ tools.Tool      = (*WeatherTool)(nil)
)

const missingWeatherKeyMessage = "Missing WEATHER_API_KEY. Set the environment variable to your WeatherAPI.com key."

type WeatherTool struct {
	weather output.WeatherPort
	logger  output.LoggerPort
}

func NewWeatherTool(weather output.WeatherPort, logger output.LoggerPort) *WeatherTool {
	return &WeatherTool{weather: weather, logger: logger}
}

func (t *WeatherTool) Name() string { return entity.ToolGetWeather.String() }

func (t *WeatherTool) Description() string {
	return "Fetch the current weather and a 7-day forecast for a destination. " +
		`Input is the destination, e.g. "Paris", "San Francisco, USA" or "48.8566,2.3522". ` +
		"Returns a concise JSON summary of location, current conditions and daily forecast."
}

func (t *WeatherTool) Parameters() *jsonschema.Schema {
	return destinationSchema(`Destination name or "lat,lon" pair`)
}

func (t *WeatherTool) Call(ctx context.Context, input string) (string, error) {
	return t.Invoke(ctx, input).Output, nil
}

func (t *WeatherTool) Invoke(ctx context.Context, input string) entity.ToolResult {
	start := time.Now()
	destination := parseDestination(input)
	if destination == "" {
		return entity.Failure(entity.ToolGetWeather, input, entity.ToolError{
			Kind:    entity.ToolErrorInvalidInput,
			Message: "destination must not be empty",
		}).WithTiming(start)
	}

	summary, err := t.weather.Forecast(ctx, destination)
	if err != nil {
		toolErr := weatherToolError(err)
		t.logger.Warn("Weather lookup failed", "destination", destination, "kind", toolErr.Kind, "error", err)
		return entity.Failure(entity.ToolGetWeather, destination, toolErr).WithTiming(start)
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return entity.Failure(entity.ToolGetWeather, destination, entity.ToolError{
			Kind:    entity.ToolErrorUnexpected,
			Message: "Unexpected error: " + err.Error(),
		}).WithTiming(start)
	}

	result := entity.Success(entity.ToolGetWeather, destination, string(data))
	result.Weather = summary
	return result.WithTiming(start)
}

func weatherToolError(err error) entity.ToolError {
	if errorsx.HasReason(err, errorsx.ReasonWeatherCredential) {
		return entity.ToolError{
			Kind:    entity.ToolErrorMissingCredential,
			Message: missingWeatherKeyMessage,
		}
	}

	var httpErr *errorsx.HTTPError
	if errors.As(err, &httpErr) {
		toolErr := entity.ToolError{
			Kind:    entity.ToolErrorUpstreamHTTP,
			Message: httpErr.Error(),
		}
		if httpErr.Body != "" {
			body := httpErr.Body
			toolErr.Details = &body
		}
		return toolErr
	}

	return entity.ToolError{
		Kind:    entity.ToolErrorUnexpected,
		Message: "Unexpected error: " + err.Error(),
	}
}
