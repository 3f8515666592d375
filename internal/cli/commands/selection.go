package commands

import (
	"fmt"

	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/filter"
	"github.com/spf13/cobra"
)

// selectionFlags are the filter flags shared by summary and export.
type selectionFlags struct {
	Site       string
	MinPayload float64
	MaxPayload float64
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Site, "site", filter.AllSites, "Launch site to select, or ALL")
	cmd.Flags().Float64Var(&f.MinPayload, "min-payload", 0, "Lower payload bound in kg (default: dataset minimum)")
	cmd.Flags().Float64Var(&f.MaxPayload, "max-payload", 0, "Upper payload bound in kg (default: dataset maximum)")

	_ = cmd.RegisterFlagCompletionFunc("site", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return append([]string{filter.AllSites}, dataset.KnownSites...), cobra.ShellCompDirectiveNoFileComp
	})
}

// selection starts from the dashboard's initial selection and applies the
// flags that were set.
func (f *selectionFlags) selection(cmd *cobra.Command, ds *dataset.Dataset) (filter.Selection, error) {
	sel := filter.DefaultSelection(ds)
	sel.Site = f.Site

	if cmd.Flags().Changed("min-payload") {
		sel.Payload.Low = f.MinPayload
	}
	if cmd.Flags().Changed("max-payload") {
		sel.Payload.High = f.MaxPayload
	}
	if sel.Payload.Low < 0 || sel.Payload.High < 0 {
		return filter.Selection{}, fmt.Errorf("payload bounds must not be negative")
	}
	return sel.Normalize(), nil
}
