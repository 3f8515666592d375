// Package config provides configuration management for the launchdash CLI.
package config

// Defaults for every configuration key.
const (
	DefaultDataPath      = "spacex_launch_dash.csv"
	DefaultHost          = "127.0.0.1"
	DefaultPort          = 8050
	DefaultSessionSecret = "launchdash-dev-session-secret-change-me"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultOutput        = "auto"
)

// UIConfig holds configuration for the dashboard server.
type UIConfig struct {
	Host          string `koanf:"host"`
	Port          int    `koanf:"port"`
	Watch         bool   `koanf:"watch"`
	SessionSecret string `koanf:"session_secret"`
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Host:          DefaultHost,
		Port:          DefaultPort,
		SessionSecret: DefaultSessionSecret,
	}
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Config holds all CLI configuration options.
type Config struct {
	DataPath     string     `koanf:"data_path"`
	OutputFormat string     `koanf:"output"`
	UI           *UIConfig  `koanf:"ui"`
	Log          *LogConfig `koanf:"log"`
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Host == "" {
		ui.Host = DefaultHost
	}
	if ui.Port == 0 {
		ui.Port = DefaultPort
	}
	if ui.SessionSecret == "" {
		ui.SessionSecret = DefaultSessionSecret
	}
	return ui
}

// GetLogConfig returns the log config with defaults applied.
func (c *Config) GetLogConfig() *LogConfig {
	if c.Log == nil {
		return &LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat}
	}
	l := c.Log
	if l.Level == "" {
		l.Level = DefaultLogLevel
	}
	if l.Format == "" {
		l.Format = DefaultLogFormat
	}
	return l
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		DataPath:     DefaultDataPath,
		OutputFormat: DefaultOutput,
		UI:           DefaultUIConfig(),
		Log:          &LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}
