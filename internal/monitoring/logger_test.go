package monitoring_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2h4u/beeminder-wordcount/internal/config"
	"github.com/j2h4u/beeminder-wordcount/internal/monitoring"
)

func TestNew_FileOutputJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordcount.log")
	logger := monitoring.New(monitoring.LoggerConfig{Level: "warn", Format: "json", Output: path})

	logger.Info().Msg("hidden")
	logger.Warn().Str("goal", "writing").Msg("visible")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"goal":"writing"`)
	assert.Contains(t, string(data), `"message":"visible"`)
}

func TestNew_LevelFallback(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "", want: zerolog.InfoLevel},
		{level: "loud", want: zerolog.InfoLevel},
		{level: "debug", want: zerolog.DebugLevel},
		{level: "error", want: zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := monitoring.New(monitoring.LoggerConfig{Level: tt.level})
			zl := logger.Zerolog()
			assert.Equal(t, tt.want, zl.GetLevel())
			assert.NoError(t, logger.Close())
		})
	}
}

func TestFromConfig(t *testing.T) {
	got := monitoring.FromConfig(config.MonitoringConfig{LogLevel: "debug", LogFormat: "console", LogOutput: "stdout"})
	assert.Equal(t, monitoring.LoggerConfig{Level: "debug", Format: "console", Output: "stdout"}, got)
}
