package config

import (
	"fmt"
	"strings"
	"time"

	"travel-agent/internal/domain/entity"
	"travel-agent/internal/domain/errorsx"
	"travel-agent/internal/infrastructure/llm/gemini"
	"travel-agent/internal/infrastructure/logger"
	"travel-agent/internal/infrastructure/search/duckduckgo"
	"travel-agent/internal/infrastructure/weather/weatherapi"

	"github.com/spf13/viper"
)

// EnvPrefix applies to every key without an explicit binding,
// e.g. TRAVEL_SEARCH_RESULTS for search.results.
const EnvPrefix = "TRAVEL"

const defaultMaxIterations = 10

type Config struct {
	LLM     LLMConfig     `mapstructure:"llm"`
	Weather WeatherConfig `mapstructure:"weather"`
	Search  SearchConfig  `mapstructure:"search"`
	Agent   AgentConfig   `mapstructure:"agent"`
	Log     LogConfig     `mapstructure:"log"`
}

type LLMConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float32 `mapstructure:"temperature"`
}

type WeatherConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type SearchConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Results   int           `mapstructure:"results"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type AgentConfig struct {
	Mode          entity.AgentMode `mapstructure:"mode"`
	MaxIterations int              `mapstructure:"max_iterations"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
}

// Load reads defaults, then the optional config file at path, then the
// environment. Credentials come from their conventional variable names.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", gemini.DefaultModel)
	v.SetDefault("llm.base_url", gemini.DefaultBaseURL)
	v.SetDefault("llm.temperature", 0)
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.base_url", weatherapi.DefaultBaseURL)
	v.SetDefault("search.base_url", duckduckgo.DefaultBaseURL)
	v.SetDefault("search.results", duckduckgo.DefaultResults)
	v.SetDefault("search.timeout", duckduckgo.DefaultTimeout)
	v.SetDefault("search.user_agent", duckduckgo.DefaultUserAgent)
	v.SetDefault("agent.mode", string(entity.AgentModePipeline))
	v.SetDefault("agent.max_iterations", defaultMaxIterations)
	v.SetDefault("log.level", logger.DefaultConfig().Level)
	v.SetDefault("log.dir", logger.DefaultConfig().Dir)

	bindings := map[string]string{
		"llm.api_key":     "GEMINI_API_KEY",
		"llm.model":       "LLM_MODEL",
		"llm.base_url":    "LLM_BASE_URL",
		"weather.api_key": "WEATHER_API_KEY",
	}
	for key, envVar := range bindings {
		if err := v.BindEnv(key, envVar); err != nil {
			return Config{}, errorsx.Wrap(fmt.Errorf("bind %s: %w", key, err), errorsx.ReasonConfig)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errorsx.Wrap(fmt.Errorf("read config: %w", err), errorsx.ReasonConfig)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errorsx.Wrap(fmt.Errorf("decode config: %w", err), errorsx.ReasonConfig)
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside a run.
// Missing credentials are not errors here: the run reports them in-band.
func (c Config) Validate() error {
	var problems []string

	if !c.Agent.Mode.Valid() {
		problems = append(problems, fmt.Sprintf("agent.mode must be %q or %q, got %q",
			entity.AgentModePipeline, entity.AgentModeAgent, c.Agent.Mode))
	}
	if c.Agent.MaxIterations <= 0 {
		problems = append(problems, "agent.max_iterations must be positive")
	}
	if c.Search.Results <= 0 {
		problems = append(problems, "search.results must be positive")
	}
	if c.Search.Timeout <= 0 {
		problems = append(problems, "search.timeout must be positive")
	}
	if c.LLM.Model == "" {
		problems = append(problems, "llm.model must not be empty")
	}

	if len(problems) > 0 {
		return errorsx.Wrap(fmt.Errorf("invalid config: %s", strings.Join(problems, "; ")), errorsx.ReasonConfig)
	}
	return nil
}
