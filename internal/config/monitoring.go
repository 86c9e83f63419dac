// Monitoring configuration - logging settings.
package config

import "fmt"

// MonitoringConfig contains logging settings.
type MonitoringConfig struct {
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // json, console
	LogOutput string `yaml:"log_output"` // stdout, stderr, or file path
}

// Validate checks the log format.
func (m MonitoringConfig) Validate() error {
	switch m.LogFormat {
	case "", "json", "console":
		return nil
	}
	return fmt.Errorf("invalid monitoring.log_format: %q (must be json or console)", m.LogFormat)
}
