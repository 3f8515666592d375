package commands

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/launchdash/internal/cli/config"
	"github.com/leapstack-labs/launchdash/internal/cli/output"
	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config, logger and renderer for cmd.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

// LoadDataset loads the configured launch records file.
func (c *CommandContext) LoadDataset(ctx context.Context) (*dataset.Dataset, error) {
	c.Logger.Debug("loading launch records", "path", c.Cfg.DataPath)
	ds, err := dataset.Load(ctx, c.Cfg.DataPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("loaded launch records",
		"path", ds.Path(),
		"records", ds.Len(),
		"min_payload", ds.MinPayload(),
		"max_payload", ds.MaxPayload(),
	)
	return ds, nil
}

// getConfig returns the loaded configuration, or the defaults when the
// command runs outside the root command (tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}
