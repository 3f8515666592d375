package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
	validOutputs    = []string{"auto", "text", "markdown", "json", "yaml"}
)

// Validate checks if the configuration is valid. All problems are reported
// together.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DataPath) == "" {
		errs = append(errs, errors.New("data_path is required"))
	}

	ui := c.GetUIConfig()
	if ui.Port < 1 || ui.Port > 65535 {
		errs = append(errs, fmt.Errorf("ui.port must be between 1 and 65535, got %d", ui.Port))
	}

	log := c.GetLogConfig()
	if !oneOf(log.Level, validLogLevels) {
		errs = append(errs, fmt.Errorf("log.level must be one of %s, got %q", strings.Join(validLogLevels, "|"), log.Level))
	}
	if !oneOf(log.Format, validLogFormats) {
		errs = append(errs, fmt.Errorf("log.format must be one of %s, got %q", strings.Join(validLogFormats, "|"), log.Format))
	}

	if c.OutputFormat != "" && !oneOf(c.OutputFormat, validOutputs) {
		errs = append(errs, fmt.Errorf("output must be one of %s, got %q", strings.Join(validOutputs, "|"), c.OutputFormat))
	}

	return errors.Join(errs...)
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}
