package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2h4u/beeminder-wordcount/internal/config"
)

func TestParseWatchCommand(t *testing.T) {
	tests := []struct {
		line string
		want watchCommand
	}{
		{line: "", want: watchEmpty},
		{line: "   ", want: watchEmpty},
		{line: "send", want: watchSend},
		{line: " S ", want: watchSend},
		{line: "status", want: watchStatus},
		{line: "st", want: watchStatus},
		{line: "quit", want: watchQuit},
		{line: "exit", want: watchQuit},
		{line: "?", want: watchHelp},
		{line: "sned", want: watchUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, parseWatchCommand(tt.line))
		})
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	assert.Equal(t, 1, run([]string{"sned"}))
	assert.Equal(t, 1, run([]string{"watchh", "--debug"}))
	assert.Equal(t, 0, run([]string{"version"}))
	assert.Equal(t, 0, run([]string{"help"}))
}

// TestEmbeddedDefaultConfigIsValid verifies the shipped config loads as-is.
func TestEmbeddedDefaultConfigIsValid(t *testing.T) {
	data, err := getEmbeddedConfig("default")
	require.NoError(t, err)

	cfg, err := config.LoadFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "https://www.beeminder.com", cfg.Service.BaseURL)
	assert.Equal(t, "500ms", cfg.Poll.Interval.String())
}

func TestResolveConfig_UserPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service: {}\n"), 0600))

	data, source, err := resolveConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, source)
	assert.Equal(t, "service: {}\n", string(data))

	_, _, err = resolveConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestResolveConfig_FallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, source, err := resolveConfig("")
	require.NoError(t, err)
	assert.Equal(t, "(embedded) default.yaml", source)
}
