package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/launchdash/internal/dashboard"
	"github.com/spf13/cobra"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	Chart  string
	Format string
	Out    string
	selectionFlags
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a dashboard chart to a file",
		Long: `Render one of the dashboard charts for a selection without a browser.

Formats:
  png, svg  Image drawn server-side
  json      Plotly figure, as sent to the page

Images cannot be drawn for an empty selection.`,
		Example: `  # Success pie for KSC LC-39A as PNG
  launchdash export --chart pie --site "KSC LC-39A" --out pie.png

  # Scatter figure JSON to stdout
  launchdash export --chart scatter --format json --min-payload 2000 --max-payload 4000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Chart, "chart", "pie", "Chart to render (pie|scatter)")
	cmd.Flags().StringVar(&opts.Format, "format", "", "Output format (png|svg|json, default: from --out extension, else png)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Output file (default: <chart-id>.<format>, - for stdout)")
	opts.register(cmd)

	_ = cmd.RegisterFlagCompletionFunc("chart", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"pie", "scatter"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"png", "svg", dashboard.FormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions) error {
	cmdCtx := NewCommandContext(cmd)

	output, err := dashboard.ResolveOutput(opts.Chart)
	if err != nil {
		return err
	}
	format := exportFormat(opts.Format, opts.Out)

	ds, err := cmdCtx.LoadDataset(cmd.Context())
	if err != nil {
		return err
	}
	sel, err := opts.selection(cmd, ds)
	if err != nil {
		return err
	}

	if opts.Out == "-" {
		w := bufio.NewWriter(cmd.OutOrStdout())
		if err := dashboard.Export(w, ds, output, sel, format); err != nil {
			return err
		}
		return w.Flush()
	}

	path := opts.Out
	if path == "" {
		path = output + "." + format
	}
	if err := writeExport(path, func(w io.Writer) error {
		return dashboard.Export(w, ds, output, sel, format)
	}); err != nil {
		return err
	}

	cmdCtx.Logger.Debug("exported chart", "chart", output, "site", sel.Site, "format", format, "path", path)
	cmdCtx.Renderer.Success(fmt.Sprintf("Wrote %s", path))
	return nil
}

// exportFormat picks the explicit format, else the --out extension, else png.
func exportFormat(format, out string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if i := strings.LastIndexByte(out, '.'); i >= 0 && out != "-" {
		switch ext := strings.ToLower(out[i+1:]); ext {
		case "png", "svg", dashboard.FormatJSON:
			return ext
		}
	}
	return "png"
}

// writeExport renders into path, removing the file again if rendering fails.
func writeExport(path string, render func(io.Writer) error) error {
	f, err := os.Create(path) //nolint:gosec // user-chosen output path
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	if err := render(w); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
