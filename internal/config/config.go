// Package config loads and validates the word counter's application config.
//
// DESIGN: The binary ships a complete default config (cmd/configs/default.yaml),
// so every key is present even when the user never writes one. User files
// replace it wholesale; Validate rejects anything incomplete.
//
// FILES:
//   - config.go:     Root Config struct, Load(), Validate()
//   - monitoring.go: Logging settings
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root application configuration.
type Config struct {
	Service    ServiceConfig    `yaml:"service"`    // Beeminder endpoint
	Paths      PathsConfig      `yaml:"paths"`      // Vault, selection file, settings, history
	Poll       PollConfig       `yaml:"poll"`       // Selection poller
	Monitoring MonitoringConfig `yaml:"monitoring"` // Logging
}

// ServiceConfig contains the datapoint service location.
type ServiceConfig struct {
	BaseURL string `yaml:"base_url"` // e.g. https://www.beeminder.com
}

// PathsConfig contains filesystem locations. "~/" is expanded to the home directory.
type PathsConfig struct {
	Vault         string `yaml:"vault"`          // Directory of markdown documents
	SelectionFile string `yaml:"selection_file"` // JSON file an editor hook writes the active view to
	Settings      string `yaml:"settings"`       // Persisted settings record (YAML)
	History       string `yaml:"history"`        // sqlite submission log; empty disables history
}

// PollConfig contains selection poller settings.
type PollConfig struct {
	Interval time.Duration `yaml:"interval"` // Time between measurements
}

// envVarPattern matches ${VAR:-default} or ${VAR}.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults expands environment variables with support for default values.
// Supports both ${VAR} and ${VAR:-default} syntax.
func expandEnvWithDefaults(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) > 2 {
			return parts[2]
		}
		return ""
	})
}

// Load reads configuration from a YAML file.
// Returns an error if the file doesn't exist or is invalid.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses configuration from raw YAML bytes.
// Supports ${VAR:-default} env var expansion, env overrides, and validation.
func LoadFromBytes(data []byte) (*Config, error) {
	expanded := expandEnvWithDefaults(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.Paths.expandHome()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvOverrides() {
	// BEEMINDER_WORDCOUNT_VAULT points the vault-wide count at another directory
	if v := os.Getenv("BEEMINDER_WORDCOUNT_VAULT"); v != "" {
		c.Paths.Vault = v
	}

	// BEEMINDER_BASE_URL redirects submissions (staging, local mocks)
	if v := os.Getenv("BEEMINDER_BASE_URL"); v != "" {
		c.Service.BaseURL = v
	}

	// BEEMINDER_WORDCOUNT_LOG_LEVEL overrides monitoring.log_level
	if v := os.Getenv("BEEMINDER_WORDCOUNT_LOG_LEVEL"); v != "" {
		c.Monitoring.LogLevel = v
	}
}

func (p *PathsConfig) expandHome() {
	p.Vault = expandHome(p.Vault)
	p.SelectionFile = expandHome(p.SelectionFile)
	p.Settings = expandHome(p.Settings)
	p.History = expandHome(p.History)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Service.BaseURL == "" {
		return fmt.Errorf("service.base_url is required")
	}
	if !strings.HasPrefix(c.Service.BaseURL, "http://") && !strings.HasPrefix(c.Service.BaseURL, "https://") {
		return fmt.Errorf("invalid service.base_url: %q (must be http or https)", c.Service.BaseURL)
	}

	if c.Paths.Vault == "" {
		return fmt.Errorf("paths.vault is required")
	}
	if c.Paths.SelectionFile == "" {
		return fmt.Errorf("paths.selection_file is required")
	}
	if c.Paths.Settings == "" {
		return fmt.Errorf("paths.settings is required")
	}

	if c.Poll.Interval <= 0 {
		return fmt.Errorf("poll.interval is required")
	}

	return c.Monitoring.Validate()
}
