package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with API key from environment", func(t *testing.T) {
		t.Setenv("STUDYDECK_LLM_GEMINI_API_KEY", "test-api-key")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Server.LogLevel)
		assert.Equal(t, "flashcard_data", cfg.Storage.DataDir)
		assert.Equal(t, "test-api-key", cfg.LLM.GeminiAPIKey)
		assert.Equal(t, "gemini-2.0-flash", cfg.LLM.ModelName)
		assert.Equal(t, 30, cfg.LLM.TimeoutSeconds)
		assert.Equal(t, 3000, cfg.LLM.MaxContextChars)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("STUDYDECK_LLM_GEMINI_API_KEY", "test-api-key")
		t.Setenv("STUDYDECK_SERVER_PORT", "9090")
		t.Setenv("STUDYDECK_SERVER_LOG_LEVEL", "debug")
		t.Setenv("STUDYDECK_STORAGE_DATA_DIR", "/var/lib/studydeck")
		t.Setenv("STUDYDECK_LLM_MODEL_NAME", "gemini-2.5-pro")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.LogLevel)
		assert.Equal(t, "/var/lib/studydeck", cfg.Storage.DataDir)
		assert.Equal(t, "gemini-2.5-pro", cfg.LLM.ModelName)
	})

	t.Run("missing API key fails validation", func(t *testing.T) {
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("invalid log level fails validation", func(t *testing.T) {
		t.Setenv("STUDYDECK_LLM_GEMINI_API_KEY", "test-api-key")
		t.Setenv("STUDYDECK_SERVER_LOG_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("invalid port fails validation", func(t *testing.T) {
		t.Setenv("STUDYDECK_LLM_GEMINI_API_KEY", "test-api-key")
		t.Setenv("STUDYDECK_SERVER_PORT", "70000")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}
