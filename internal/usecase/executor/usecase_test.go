package executor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"travel-agent/internal/adapter/tool"
	"travel-agent/internal/application/port/output"
	"travel-agent/internal/application/service"
	"travel-agent/internal/domain/entity"
	"travel-agent/internal/domain/errorsx"
	"travel-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	responses []entity.Message
	err       error
	requests  []output.ChatRequest
}

func (f *fakeLLM) Chat(_ context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, errors.New("no scripted response")
	}
	msg := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return &output.ChatResponse{Message: msg}, nil
}

type fakeWeather struct {
	summary *entity.WeatherSummary
	err     error
	calls   int
}

func (f *fakeWeather) Forecast(_ context.Context, _ string) (*entity.WeatherSummary, error) {
	f.calls++
	return f.summary, f.err
}

type fakeSearch struct {
	results []entity.SearchResult
	err     error
	queries []string
}

func (f *fakeSearch) Search(_ context.Context, query string, _ int) ([]entity.SearchResult, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

type recordingUI struct {
	starts     []string
	results    []string
	iterations int
}

func (u *recordingUI) AskDestination(context.Context) (string, error) { return "", nil }

func (u *recordingUI) ShowIteration(context.Context, int, int) { u.iterations++ }

func (u *recordingUI) ShowToolStart(_ context.Context, toolName, _ string) {
	u.starts = append(u.starts, toolName)
}

func (u *recordingUI) ShowToolResult(_ context.Context, toolName, _ string, _ bool) {
	u.results = append(u.results, toolName)
}

type fixture struct {
	llm     *fakeLLM
	weather *fakeWeather
	search  *fakeSearch
	ui      *recordingUI
}

func newUseCase(f *fixture, cfg Config) *UseCase {
	log := logger.NewNop()
	registry := service.NewToolRegistry()
	registry.Register(tool.NewWeatherTool(f.weather, log))
	registry.Register(tool.NewAttractionsTool(f.search, log, 0))
	return New(f.llm, registry, f.ui, log, cfg)
}

func ptr[T any](v T) *T { return &v }

func sunnySummary() *entity.WeatherSummary {
	return &entity.WeatherSummary{
		Location: entity.WeatherLocation{Name: ptr("Paris"), Country: ptr("France")},
		Current:  entity.CurrentWeather{Condition: ptr("Sunny"), TempC: ptr(24.0)},
		Forecast: []entity.ForecastDay{},
	}
}

func louvre() []entity.SearchResult {
	return []entity.SearchResult{
		{Title: "Louvre Museum", Snippet: "World's largest art museum.", Link: "https://example.com/louvre"},
	}
}

func TestPipeline_RunsBothToolsThenSynthesizes(t *testing.T) {
	f := &fixture{
		llm:     &fakeLLM{responses: []entity.Message{{Role: entity.RoleAssistant, Content: "Sunny Paris! Visit the Louvre."}}},
		weather: &fakeWeather{summary: sunnySummary()},
		search:  &fakeSearch{results: louvre()},
		ui:      &recordingUI{},
	}

	resp, err := newUseCase(f, DefaultConfig()).Execute(context.Background(), "  Paris ")
	require.NoError(t, err)

	assert.Equal(t, "Sunny Paris! Visit the Louvre.", resp.Output)
	assert.Equal(t, entity.AgentModePipeline, resp.Mode)
	assert.Equal(t, "Paris", resp.Destination)
	assert.Equal(t, "Destination: Paris. Please provide the weather and a list of top attractions with brief notes.", resp.Input)
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, 1, resp.Iterations)
	assert.False(t, resp.FinishedAt.Before(resp.StartedAt))

	require.Len(t, resp.IntermediateSteps, 2)
	assert.Equal(t, entity.ToolGetWeather, resp.IntermediateSteps[0].Tool)
	assert.Equal(t, entity.ToolSearchAttractions, resp.IntermediateSteps[1].Tool)
	for _, step := range resp.IntermediateSteps {
		assert.Equal(t, entity.ToolResultOK, step.Status)
		assert.True(t, strings.HasPrefix(step.CallID, "call_"))
	}
	assert.Equal(t, []string{"Paris"}, f.search.queries)
	assert.Equal(t, []string{"get_weather", "search_attractions"}, f.ui.starts)

	require.Len(t, f.llm.requests, 1)
	req := f.llm.requests[0]
	assert.Empty(t, req.Tools)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, entity.RoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, `"name": "Paris"`)
	assert.Contains(t, req.Messages[0].Content, "1 search result(s):\nTitle: Louvre Museum")
	assert.Equal(t, resp.Input, req.Messages[1].Content)
}

func TestWeatherForPrompt(t *testing.T) {
	decoded := entity.Success(entity.ToolGetWeather, "Paris", `{"compact":true}`)
	decoded.Weather = sunnySummary()

	got := weatherForPrompt(decoded)
	assert.Contains(t, got, "\n  \"location\": {")
	assert.Contains(t, got, `"condition": "Sunny"`)
	assert.NotContains(t, got, "compact")

	raw := entity.Success(entity.ToolGetWeather, "Paris", `{"compact":true}`)
	assert.Equal(t, `{"compact":true}`, weatherForPrompt(raw))
}

func TestPipeline_MissingWeatherKeyStillSynthesizes(t *testing.T) {
	f := &fixture{
		llm:     &fakeLLM{responses: []entity.Message{{Role: entity.RoleAssistant, Content: "Weather is unavailable, but here are attractions."}}},
		weather: &fakeWeather{err: errorsx.Wrap(errors.New("missing weather api key"), errorsx.ReasonWeatherCredential)},
		search:  &fakeSearch{results: louvre()},
		ui:      &recordingUI{},
	}

	resp, err := newUseCase(f, DefaultConfig()).Execute(context.Background(), "Paris")
	require.NoError(t, err)

	require.Len(t, resp.IntermediateSteps, 2)
	weather := resp.IntermediateSteps[0]
	assert.True(t, weather.IsError())
	require.NotNil(t, weather.Error)
	assert.Equal(t, entity.ToolErrorMissingCredential, weather.Error.Kind)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(weather.Output), &payload))
	assert.Contains(t, payload, "error")
	assert.NotContains(t, payload, "forecast")

	assert.Equal(t, entity.ToolResultOK, resp.IntermediateSteps[1].Status)
	assert.Equal(t, "Weather is unavailable, but here are attractions.", resp.Output)

	prompt := f.llm.requests[0].Messages[0].Content
	assert.Contains(t, prompt, "The weather lookup failed: Missing WEATHER_API_KEY")
	assert.Contains(t, prompt, "Title: Louvre Museum")
}

func TestPipeline_UpstreamDetailsReachPrompt(t *testing.T) {
	f := &fixture{
		llm: &fakeLLM{responses: []entity.Message{{Role: entity.RoleAssistant, Content: "ok"}}},
		weather: &fakeWeather{err: &errorsx.HTTPError{
			Provider:   "WeatherAPI",
			StatusCode: 400,
			Status:     "400 Bad Request",
			Body:       `{"error":{"code":1006,"message":"No matching location found."}}`,
		}},
		search: &fakeSearch{err: errors.New("duckduckgo returned 503 Service Unavailable")},
		ui:     &recordingUI{},
	}

	resp, err := newUseCase(f, DefaultConfig()).Execute(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.True(t, resp.IntermediateSteps[0].IsError())
	assert.True(t, resp.IntermediateSteps[1].IsError())

	prompt := f.llm.requests[0].Messages[0].Content
	assert.Contains(t, prompt, "HTTP error from WeatherAPI: 400 Bad Request")
	assert.Contains(t, prompt, "No matching location found.")
	assert.Contains(t, prompt, "The attraction search failed: duckduckgo returned 503")
}

func TestPipeline_LLMFailureIsFatal(t *testing.T) {
	f := &fixture{
		llm:     &fakeLLM{err: errors.New("401 API key not valid")},
		weather: &fakeWeather{summary: sunnySummary()},
		search:  &fakeSearch{results: louvre()},
		ui:      &recordingUI{},
	}

	resp, err := newUseCase(f, DefaultConfig()).Execute(context.Background(), "Paris")
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errorsx.HasReason(err, errorsx.ReasonLLMGenerate))
	assert.Contains(t, err.Error(), "401 API key not valid")
	assert.Len(t, f.llm.requests, 1)
}

func TestExecute_EmptyDestination(t *testing.T) {
	f := &fixture{llm: &fakeLLM{}, weather: &fakeWeather{}, search: &fakeSearch{}, ui: &recordingUI{}}

	_, err := newUseCase(f, DefaultConfig()).Execute(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyDestination)
	assert.Zero(t, f.weather.calls)
	assert.Empty(t, f.search.queries)
	assert.Empty(t, f.llm.requests)
}

func TestExecute_UnknownMode(t *testing.T) {
	f := &fixture{llm: &fakeLLM{}, weather: &fakeWeather{}, search: &fakeSearch{}, ui: &recordingUI{}}
	cfg := DefaultConfig()
	cfg.Mode = "swarm"

	_, err := newUseCase(f, cfg).Execute(context.Background(), "Paris")
	require.Error(t, err)
	assert.True(t, errorsx.HasReason(err, errorsx.ReasonConfig))
}

func agentConfig() Config {
	cfg := DefaultConfig()
	cfg.Mode = entity.AgentModeAgent
	return cfg
}

func TestAgent_ToolLoop(t *testing.T) {
	f := &fixture{
		llm: &fakeLLM{responses: []entity.Message{
			{
				Role: entity.RoleAssistant,
				ToolCalls: []entity.ToolCall{
					{ID: "call_w", Name: "get_weather", Arguments: `{"destination":"Paris"}`},
					{ID: "call_s", Name: "search_attractions", Arguments: `{"destination":"Paris"}`},
				},
			},
			{Role: entity.RoleAssistant, Content: "Bring sunglasses and visit the Louvre."},
		}},
		weather: &fakeWeather{summary: sunnySummary()},
		search:  &fakeSearch{results: louvre()},
		ui:      &recordingUI{},
	}

	resp, err := newUseCase(f, agentConfig()).Execute(context.Background(), "Paris")
	require.NoError(t, err)

	assert.Equal(t, "Bring sunglasses and visit the Louvre.", resp.Output)
	assert.Equal(t, entity.AgentModeAgent, resp.Mode)
	assert.Equal(t, 2, resp.Iterations)
	assert.Equal(t, 2, f.ui.iterations)
	assert.True(t, resp.Called(entity.ToolGetWeather))
	assert.True(t, resp.Called(entity.ToolSearchAttractions))
	assert.Equal(t, "call_w", resp.IntermediateSteps[0].CallID)

	require.Len(t, f.llm.requests, 2)
	first := f.llm.requests[0]
	require.Len(t, first.Tools, 2)
	assert.Equal(t, "get_weather", first.Tools[0].Name)
	assert.Equal(t, "search_attractions", first.Tools[1].Name)
	assert.Contains(t, first.Messages[0].Content, "- get_weather:")

	second := f.llm.requests[1]
	require.Len(t, second.Messages, 5)
	assert.Equal(t, entity.RoleTool, second.Messages[3].Role)
	assert.Equal(t, "call_w", second.Messages[3].ToolCallID)
	assert.Contains(t, second.Messages[3].Content, `"name":"Paris"`)
	assert.Contains(t, second.Messages[4].Content, "Title: Louvre Museum")
}

func TestAgent_UnknownToolIsReportedToModel(t *testing.T) {
	f := &fixture{
		llm: &fakeLLM{responses: []entity.Message{
			{Role: entity.RoleAssistant, ToolCalls: []entity.ToolCall{{ID: "call_x", Name: "book_hotel", Arguments: "{}"}}},
			{Role: entity.RoleAssistant, Content: "done"},
		}},
		weather: &fakeWeather{},
		search:  &fakeSearch{},
		ui:      &recordingUI{},
	}

	resp, err := newUseCase(f, agentConfig()).Execute(context.Background(), "Paris")
	require.NoError(t, err)

	require.Len(t, resp.IntermediateSteps, 1)
	step := resp.IntermediateSteps[0]
	assert.True(t, step.IsError())
	assert.Equal(t, entity.ToolErrorUnknownTool, step.Error.Kind)
	assert.Contains(t, f.llm.requests[1].Messages[3].Content, "unknown tool 'book_hotel'")
}

func TestAgent_MaxIterations(t *testing.T) {
	f := &fixture{
		llm: &fakeLLM{responses: []entity.Message{
			{Role: entity.RoleAssistant, ToolCalls: []entity.ToolCall{{ID: "call_w", Name: "get_weather", Arguments: "Paris"}}},
		}},
		weather: &fakeWeather{summary: sunnySummary()},
		search:  &fakeSearch{},
		ui:      &recordingUI{},
	}
	cfg := agentConfig()
	cfg.MaxIterations = 3

	_, err := newUseCase(f, cfg).Execute(context.Background(), "Paris")
	require.Error(t, err)
	assert.True(t, errorsx.HasReason(err, errorsx.ReasonLLMLoop))
	assert.Len(t, f.llm.requests, 3)
	assert.Equal(t, 3, f.weather.calls)
}

func TestTruncateObservation(t *testing.T) {
	short := "short"
	assert.Equal(t, short, truncateObservation(short))

	long := strings.Repeat("x", maxObservationLen+10)
	got := truncateObservation(long)
	assert.True(t, strings.HasSuffix(got, "... (truncated)"))
	assert.Len(t, got, maxObservationLen+len("\n... (truncated)"))
}

func TestTruncateObservation_MultiByteBoundary(t *testing.T) {
	// "é" is two bytes; the odd prefix puts the limit inside one of them.
	long := "x" + strings.Repeat("é", maxObservationLen)
	got := truncateObservation(long)

	require.True(t, utf8.ValidString(got))
	body := strings.TrimSuffix(got, "\n... (truncated)")
	assert.LessOrEqual(t, len(body), maxObservationLen)
	assert.Equal(t, maxObservationLen-1, len(body))
}
