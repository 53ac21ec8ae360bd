package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AI_PLUGIN", "GEMINI_API_KEY", "GPLACES_API_KEY", "TAVILY_API_KEY",
		"OPENWEATHERMAP_API_KEY", "EXCHANGE_RATE_API_KEY", "DB_DRIVER", "LOG_LEVEL",
		"PROVIDER_TIMEOUT", "GPLACES_MAX_RESULTS", "COMPAT_BASE_URL", "COMPAT_MODEL", "PORT",
	} {
		// cleanenv treats a set-but-empty variable as a value, so unset instead
		orig, ok := os.LookupEnv(key)
		os.Unsetenv(key)
		t.Cleanup(func() {
			if ok {
				os.Setenv(key, orig)
			} else {
				os.Unsetenv(key)
			}
		})
	}
	// point at a file that does not exist so only env vars are read
	t.Setenv("TRAVELSCOUT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestLoad(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "gemini", cfg.AI.Plugin)
		assert.Equal(t, "qwen3:4b", cfg.AI.Ollama.Model)
		assert.Equal(t, "http://localhost:11434", cfg.AI.Ollama.BaseURL)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "8000", cfg.Server.Port)
		assert.Equal(t, 10, cfg.Places.MaxResults)
		assert.Equal(t, 30*time.Second, cfg.Timeout())
		assert.Empty(t, cfg.Database.Driver)
	})

	t.Run("EnvironmentVariables", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AI_PLUGIN", "ollama")
		t.Setenv("GPLACES_API_KEY", "places-key")
		t.Setenv("TAVILY_API_KEY", "tavily-key")
		t.Setenv("PROVIDER_TIMEOUT", "5")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "ollama", cfg.AI.Plugin)
		assert.Equal(t, "places-key", cfg.Places.APIKey)
		assert.Equal(t, "tavily-key", cfg.Tavily.APIKey)
		assert.Equal(t, 5*time.Second, cfg.Timeout())
	})

	t.Run("ConfigFile", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9100\"\ntavily:\n  api_key: from-file\n"), 0o600))
		t.Setenv("TRAVELSCOUT_CONFIG", path)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "9100", cfg.Server.Port)
		assert.Equal(t, "from-file", cfg.Tavily.APIKey)
	})

	t.Run("MalformedConfigFile", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [port: 9100\n"), 0o600))
		t.Setenv("TRAVELSCOUT_CONFIG", path)

		_, err := Load()
		assert.ErrorContains(t, err, "failed to read config file")
	})
}

func TestValidate(t *testing.T) {
	t.Run("AllMissing", func(t *testing.T) {
		cfg := &Config{AI: AIConfig{Plugin: "gemini"}}

		err := cfg.Validate()
		require.Error(t, err)

		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
		for _, key := range []string{"GPLACES_API_KEY", "TAVILY_API_KEY", "OPENWEATHERMAP_API_KEY", "EXCHANGE_RATE_API_KEY", "GEMINI_API_KEY"} {
			assert.Contains(t, err.Error(), key)
		}
	})

	t.Run("Complete", func(t *testing.T) {
		cfg := &Config{
			AI:       AIConfig{Plugin: "ollama"},
			Places:   PlacesConfig{APIKey: "a"},
			Tavily:   TavilyConfig{APIKey: "b"},
			Weather:  WeatherConfig{APIKey: "c"},
			Currency: CurrencyConfig{APIKey: "d"},
		}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("UnknownPlugin", func(t *testing.T) {
		cfg := &Config{
			AI:       AIConfig{Plugin: "skynet"},
			Places:   PlacesConfig{APIKey: "a"},
			Tavily:   TavilyConfig{APIKey: "b"},
			Weather:  WeatherConfig{APIKey: "c"},
			Currency: CurrencyConfig{APIKey: "d"},
		}
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "skynet")
	})
}

func TestRequireKey(t *testing.T) {
	assert.NoError(t, RequireKey("tavily", "TAVILY_API_KEY", "x"))

	err := RequireKey("tavily", "TAVILY_API_KEY", "")
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "TAVILY_API_KEY", cfgErr.Key)
	assert.Equal(t, "tavily: TAVILY_API_KEY must be set", err.Error())
}
