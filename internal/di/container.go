package di

import (
	"fmt"

	"travel-agent/internal/adapter/tool"
	"travel-agent/internal/application/port/input"
	"travel-agent/internal/application/port/output"
	"travel-agent/internal/application/service"
	"travel-agent/internal/infrastructure/config"
	"travel-agent/internal/infrastructure/llm/gemini"
	"travel-agent/internal/infrastructure/logger"
	"travel-agent/internal/infrastructure/prompts"
	"travel-agent/internal/infrastructure/search/duckduckgo"
	"travel-agent/internal/infrastructure/weather/weatherapi"
	"travel-agent/internal/usecase/executor"
)

type Container struct {
	LLM          output.LLMPort
	Logger       output.LoggerPort
	Tools        output.ToolRegistry
	TaskExecutor input.TaskExecutor
}

type Config struct {
	App         config.Config
	// Destination names the run's log file.
	Destination string
	UI          output.UserInteractionPort
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(logger.Config{
		Dir:   cfg.App.Log.Dir,
		Level: cfg.App.Log.Level,
	}, cfg.Destination)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	llmCfg := gemini.DefaultConfig(cfg.App.LLM.APIKey, cfg.App.LLM.Model)
	if cfg.App.LLM.BaseURL != "" {
		llmCfg.BaseURL = cfg.App.LLM.BaseURL
	}
	llmCfg.Logger = log.WithField("component", "llm")
	llm := gemini.NewGeminiAdapter(llmCfg)

	tools := service.NewToolRegistry()
	if err := registerTravelTools(tools, cfg.App, log); err != nil {
		log.Close()
		return nil, err
	}

	uc := executor.New(llm, tools, cfg.UI, log, executor.Config{
		Mode:              cfg.App.Agent.Mode,
		MaxIterations:     cfg.App.Agent.MaxIterations,
		Temperature:       cfg.App.LLM.Temperature,
		SystemPrompt:      prompts.SystemPrompt,
		SynthesisTemplate: prompts.SynthesisPrompt,
	})

	return &Container{
		LLM:          llm,
		Logger:       log,
		Tools:        tools,
		TaskExecutor: uc,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func registerTravelTools(registry *service.ToolRegistryImpl, cfg config.Config, log output.LoggerPort) error {
	weather, err := weatherapi.NewClient(weatherapi.Config{
		APIKey:  cfg.Weather.APIKey,
		BaseURL: cfg.Weather.BaseURL,
		Logger:  log.WithField("component", "weatherapi"),
	})
	if err != nil {
		return fmt.Errorf("failed to create weather client: %w", err)
	}
	search, err := duckduckgo.NewClient(duckduckgo.Config{
		BaseURL:   cfg.Search.BaseURL,
		UserAgent: cfg.Search.UserAgent,
		Timeout:   cfg.Search.Timeout,
		Logger:    log.WithField("component", "duckduckgo"),
	})
	if err != nil {
		return fmt.Errorf("failed to create search client: %w", err)
	}

	registry.Register(tool.NewWeatherTool(weather, log))
	registry.Register(tool.NewAttractionsTool(search, log, cfg.Search.Results))
	return nil
}
