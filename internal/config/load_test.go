package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefaults verifies that Load falls back to the documented defaults
// when no environment variables are set.
func TestLoadDefaults(t *testing.T) {
	t.Setenv("PALIME_SERVER_PORT", "")
	t.Setenv("PALIME_SERVER_LOG_LEVEL", "")
	t.Setenv("PALIME_DATABASE_PATH", "")

	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port, "default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "default log level should be 'info'")
	assert.Equal(t, "palime.db", cfg.Database.Path, "default database path should be 'palime.db'")
	assert.Equal(t, 30, cfg.Study.MaxIntervalDays)
	assert.InDelta(t, 0.2, cfg.Study.EasePenalty, 1e-9)
}

// TestLoadFromEnv verifies that Load reads values from environment
// variables, which take precedence over defaults.
func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PALIME_SERVER_PORT", "9090")
	t.Setenv("PALIME_SERVER_LOG_LEVEL", "debug")
	t.Setenv("PALIME_DATABASE_PATH", "/tmp/vocab.db")
	t.Setenv("PALIME_STUDY_MAX_INTERVAL_DAYS", "60")

	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "/tmp/vocab.db", cfg.Database.Path)
	assert.Equal(t, 60, cfg.Study.MaxIntervalDays)
}

// TestLoadValidationErrors verifies that Load rejects invalid settings.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "port out of range",
			envVars: map[string]string{
				"PALIME_SERVER_PORT": "999999",
			},
		},
		{
			name: "invalid log level",
			envVars: map[string]string{
				"PALIME_SERVER_LOG_LEVEL": "loud",
			},
		},
		{
			name: "ease penalty out of range",
			envVars: map[string]string{
				"PALIME_STUDY_EASE_PENALTY": "1.5",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for name, value := range tc.envVars {
				t.Setenv(name, value)
			}

			cfg, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg)
		})
	}
}
