package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/launchdash/internal/ui"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the launch records dashboard",
		Long: `Load the launch records CSV and serve the interactive dashboard.

The page offers a launch site dropdown and a payload range slider. Changing
either redraws the success pie chart and the payload scatter plot.

This is also what launchdash does when run without a command.`,
		Example: `  # Serve spacex_launch_dash.csv on http://127.0.0.1:8050
  launchdash

  # Serve another file on all interfaces
  launchdash serve --data launches.csv --host 0.0.0.0 --port 9000

  # Tell open pages when the CSV changes on disk
  launchdash serve --watch`,
		Args: cobra.NoArgs,
		RunE: RunServe,
	}
}

// RunServe loads the dataset and blocks serving the dashboard until
// interrupted. A dataset that fails to load aborts startup.
func RunServe(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	uiCfg := cfg.GetUIConfig()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := cmdCtx.LoadDataset(ctx)
	if err != nil {
		return err
	}

	server, err := ui.NewServer(ui.Config{
		Dataset:       ds,
		Host:          uiCfg.Host,
		Port:          uiCfg.Port,
		Watch:         uiCfg.Watch,
		SessionSecret: uiCfg.SessionSecret,
		Logger:        cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	r.Success(fmt.Sprintf("Loaded %d launch records from %s", ds.Len(), ds.Path()))
	r.Println(fmt.Sprintf("Dashboard running on %s", server.URL()))
	r.Muted("Press Ctrl+C to stop")

	if err := server.Serve(ctx); err != nil {
		return err
	}
	cmdCtx.Logger.Info("dashboard stopped")
	return nil
}
