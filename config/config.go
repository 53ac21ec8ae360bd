package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config aggregates all application configuration
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	AI       AIConfig       `yaml:"ai"`
	Places   PlacesConfig   `yaml:"places"`
	Tavily   TavilyConfig   `yaml:"tavily"`
	Weather  WeatherConfig  `yaml:"weather"`
	Currency CurrencyConfig `yaml:"currency"`
	Database DatabaseConfig `yaml:"database"`

	// ProviderTimeout is the HTTP timeout, in seconds, for every outbound provider call
	ProviderTimeout int `yaml:"provider_timeout" env:"PROVIDER_TIMEOUT" env-default:"30"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type ServerConfig struct {
	Port string `yaml:"port" env:"PORT" env-default:"8000"`
}

type AIConfig struct {
	Plugin   string       `yaml:"plugin" env:"AI_PLUGIN" env-default:"gemini"`
	MaxTurns int          `yaml:"max_turns" env:"AGENT_MAX_TURNS" env-default:"10"`
	Gemini   GeminiConfig `yaml:"gemini"`
	Ollama   OllamaConfig `yaml:"ollama"`
	Compat   CompatConfig `yaml:"compat"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
}

type OllamaConfig struct {
	Model   string `yaml:"model" env:"OLLAMA_MODEL" env-default:"qwen3:4b"`
	BaseURL string `yaml:"base_url" env:"OLLAMA_BASE_URL" env-default:"http://localhost:11434"`
}

// CompatConfig points at any OpenAI-compatible chat completions endpoint
type CompatConfig struct {
	Provider string `yaml:"provider" env:"COMPAT_PROVIDER" env-default:"compat"`
	BaseURL  string `yaml:"base_url" env:"COMPAT_BASE_URL"`
	APIKey   string `yaml:"api_key" env:"COMPAT_API_KEY"`
	Model    string `yaml:"model" env:"COMPAT_MODEL"`
}

type PlacesConfig struct {
	APIKey     string `yaml:"api_key" env:"GPLACES_API_KEY"`
	MaxResults int    `yaml:"max_results" env:"GPLACES_MAX_RESULTS" env-default:"10"`
}

type TavilyConfig struct {
	APIKey string `yaml:"api_key" env:"TAVILY_API_KEY"`
}

type WeatherConfig struct {
	APIKey string `yaml:"api_key" env:"OPENWEATHERMAP_API_KEY"`
}

type CurrencyConfig struct {
	APIKey string `yaml:"api_key" env:"EXCHANGE_RATE_API_KEY"`
}

// DatabaseConfig configures the lookup journal. An empty driver disables it.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER"`
	DSN    string `yaml:"dsn" env:"DB_DSN" env-default:"travelscout.db"`
}

// Timeout returns ProviderTimeout as a duration
func (c *Config) Timeout() time.Duration {
	if c.ProviderTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.ProviderTimeout) * time.Second
}

// Load reads configuration from .env, config.yaml and environment variables
// Priority: Env Vars > Config File > Defaults
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	path := os.Getenv("TRAVELSCOUT_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		// No config file, just read env vars
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that every provider key is present. All missing keys are
// reported at once, each as a *ConfigurationError.
func (c *Config) Validate() error {
	var errs []error
	check := func(component, env, value string) {
		if err := RequireKey(component, env, value); err != nil {
			errs = append(errs, err)
		}
	}

	check("google places", "GPLACES_API_KEY", c.Places.APIKey)
	check("tavily", "TAVILY_API_KEY", c.Tavily.APIKey)
	check("openweathermap", "OPENWEATHERMAP_API_KEY", c.Weather.APIKey)
	check("exchangerate-api", "EXCHANGE_RATE_API_KEY", c.Currency.APIKey)

	switch c.AI.Plugin {
	case "gemini":
		check("gemini", "GEMINI_API_KEY", c.AI.Gemini.APIKey)
	case "compat":
		check("compat", "COMPAT_BASE_URL", c.AI.Compat.BaseURL)
		check("compat", "COMPAT_MODEL", c.AI.Compat.Model)
	case "ollama", "none":
	default:
		errs = append(errs, fmt.Errorf("unknown AI_PLUGIN %q", c.AI.Plugin))
	}

	return errors.Join(errs...)
}
