// Package weatherapi is a minimal client for the WeatherAPI.com forecast endpoint.
package weatherapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"
	"travel-agent/internal/domain/errorsx"
	"travel-agent/internal/infrastructure/httpclient"

	"github.com/mutablelogic/go-client"
)

var _ output.WeatherPort = (*Client)(nil)

const (
	DefaultBaseURL = "https://api.weatherapi.com/v1"

	// ForecastDays is the fixed forecast horizon.
	ForecastDays = 7
	// RequestTimeout bounds a single forecast call; there is no retry.
	RequestTimeout = 15 * time.Second

	providerName = "WeatherAPI"
)

var ErrMissingAPIKey = errors.New("missing weather api key")

type Config struct {
	APIKey  string
	BaseURL string
	Logger  output.LoggerPort
}

func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
	}
}

type Client struct {
	rest   *client.Client
	key    string
	logger output.LoggerPort
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	rest, err := client.New(client.OptEndpoint(baseURL), client.OptTimeout(RequestTimeout))
	if err != nil {
		return nil, fmt.Errorf("weatherapi client: %w", err)
	}

	return &Client{
		rest:   rest,
		key:    cfg.APIKey,
		logger: cfg.Logger,
	}, nil
}

// Forecast fetches current conditions and a ForecastDays forecast for the
// destination and reduces them to a WeatherSummary. Every error carries an
// errorsx reason; non-2xx responses unwrap to *errorsx.HTTPError.
func (c *Client) Forecast(ctx context.Context, destination string) (*entity.WeatherSummary, error) {
	if c.key == "" {
		return nil, errorsx.Wrap(ErrMissingAPIKey, errorsx.ReasonWeatherCredential)
	}

	req := &ForecastRequest{Query: destination, Days: ForecastDays}

	c.debug("Weather request", "destination", destination, "days", ForecastDays)
	start := time.Now()

	var payload forecastResponse
	err := httpclient.Do(ctx, c.rest, providerName, &payload,
		client.OptPath("forecast.json"),
		client.OptQuery(req.Values(c.key)),
		client.OptReqHeader("Accept", client.ContentTypeJson),
	)
	if err != nil {
		var httpErr *errorsx.HTTPError
		if errors.As(err, &httpErr) {
			c.debug("Weather response", "status", httpErr.StatusCode, "durationMs", time.Since(start).Milliseconds())
			return nil, errorsx.Wrap(httpErr, errorsx.ReasonWeatherHTTP)
		}
		if errorsx.HasReason(err, errorsx.ReasonWeatherDecode) {
			return nil, err
		}
		return nil, errorsx.Wrap(fmt.Errorf("request weather forecast: %w", err), errorsx.ReasonWeatherTransport)
	}

	c.debug("Weather response", "status", 200, "durationMs", time.Since(start).Milliseconds())

	return summarize(&payload, ForecastDays), nil
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
