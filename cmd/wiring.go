package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/j2h4u/beeminder-wordcount/internal/beeminder"
	"github.com/j2h4u/beeminder-wordcount/internal/config"
	"github.com/j2h4u/beeminder-wordcount/internal/history"
	"github.com/j2h4u/beeminder-wordcount/internal/host"
	"github.com/j2h4u/beeminder-wordcount/internal/monitoring"
	"github.com/j2h4u/beeminder-wordcount/internal/settings"
	"github.com/j2h4u/beeminder-wordcount/internal/submit"
)

// authTokenEnv replaces the stored auth token for a run without saving it.
const authTokenEnv = "BEEMINDER_AUTH_TOKEN"

// commonFlags are accepted by every command.
type commonFlags struct {
	configPath string
	debug      bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "path to config file")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging")
}

// resolveConfig resolves the config for a command.
// Checks: user flag -> filesystem locations -> embedded default.
// Returns raw bytes and source description.
func resolveConfig(userConfig string) ([]byte, string, error) {
	if userConfig != "" {
		data, err := os.ReadFile(userConfig)
		if err != nil {
			return nil, "", fmt.Errorf("config file not found: %s", userConfig)
		}
		return data, userConfig, nil
	}

	searchPaths := []string{}
	if dir := getConfigDir(); dir != "" {
		searchPaths = append(searchPaths, filepath.Join(dir, "config.yaml"))
	}
	searchPaths = append(searchPaths, "configs/config.yaml")

	for _, path := range searchPaths {
		if data, err := os.ReadFile(path); err == nil {
			return data, path, nil
		}
	}

	data, err := getEmbeddedConfig("default")
	if err != nil {
		return nil, "", fmt.Errorf("no config file found. Specify --config path")
	}
	return data, "(embedded) default.yaml", nil
}

// app holds the components shared by the commands.
type app struct {
	cfg       *config.Config
	logger    *monitoring.Logger
	store     *settings.FileStore
	vault     *host.FSVault
	workspace *host.SelectionFile
	client    *beeminder.Client
	history   *history.Store // nil when paths.history is empty or unusable
}

// newApp loads config, sets up logging and builds the adapters.
func newApp(ctx context.Context, flags commonFlags) (*app, error) {
	data, source, err := resolveConfig(flags.configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from %s: %w", source, err)
	}

	if flags.debug {
		cfg.Monitoring.LogLevel = "debug"
	}
	logger := monitoring.Global(monitoring.FromConfig(cfg.Monitoring))
	log.Debug().Str("config", source).Str("vault", cfg.Paths.Vault).Msg("configuration loaded")

	a := &app{
		cfg:       cfg,
		logger:    logger,
		store:     settings.NewFileStore(cfg.Paths.Settings),
		vault:     host.NewFSVault(cfg.Paths.Vault),
		workspace: host.NewSelectionFile(cfg.Paths.SelectionFile),
		client:    beeminder.NewClient(cfg.Service.BaseURL, nil),
	}

	if cfg.Paths.History != "" {
		h, err := history.Open(ctx, cfg.Paths.History)
		if err != nil {
			log.Warn().Err(err).Msg("submission history disabled")
		} else {
			a.history = h
		}
	}
	return a, nil
}

// submitter builds a submitter recording to history when available.
func (a *app) submitter() *submit.Submitter {
	var opts []submit.Option
	if a.history != nil {
		opts = append(opts, submit.WithRecorder(a.history))
	}
	return submit.New(a.vault, a.client, opts...)
}

func (a *app) Close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close history")
		}
	}
	_ = a.logger.Close()
}
