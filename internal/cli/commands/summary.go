package commands

import (
	"fmt"

	"github.com/leapstack-labs/launchdash/internal/cli/output"
	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/filter"
	"github.com/spf13/cobra"
)

// SummaryOutput is the machine-readable result of the summary command.
type SummaryOutput struct {
	DataPath   string                `json:"data_path" yaml:"data_path"`
	Site       string                `json:"site" yaml:"site"`
	MinPayload float64               `json:"min_payload_kg" yaml:"min_payload_kg"`
	MaxPayload float64               `json:"max_payload_kg" yaml:"max_payload_kg"`
	Sites      []dataset.SiteSummary `json:"sites" yaml:"sites"`
	Total      dataset.SiteSummary   `json:"total" yaml:"total"`
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	flags := &selectionFlags{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarise launch outcomes per site",
		Long: `Print launches, successes, failures and success rate per launch site.

Records are selected the same way the scatter chart selects them: by site,
then by the payload range widened by 100 kg on each side.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table

Use --output to override: auto, text, markdown, json, yaml`,
		Example: `  # All sites, full payload range
  launchdash summary

  # One site, payloads between 2000 and 4000 kg, as JSON
  launchdash summary --site "KSC LC-39A" --min-payload 2000 --max-payload 4000 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runSummary(cmd *cobra.Command, flags *selectionFlags) error {
	cmdCtx := NewCommandContext(cmd)

	ds, err := cmdCtx.LoadDataset(cmd.Context())
	if err != nil {
		return err
	}

	sel, err := flags.selection(cmd, ds)
	if err != nil {
		return err
	}

	sites := dataset.Summarize(filter.Apply(ds.Records(), sel))
	out := SummaryOutput{
		DataPath:   ds.Path(),
		Site:       sel.Site,
		MinPayload: sel.Payload.Low,
		MaxPayload: sel.Payload.High,
		Sites:      sites,
		Total:      dataset.Total("Total", sites),
	}
	if out.Sites == nil {
		out.Sites = []dataset.SiteSummary{}
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeYAML:
		return r.YAML(out)
	case output.ModeMarkdown:
		summaryMarkdown(r, out)
	default:
		summaryText(r, out)
	}
	return nil
}

func summaryText(r *output.Renderer, out SummaryOutput) {
	r.Header(1, "Launch outcomes")
	r.Muted(fmt.Sprintf("%s, site %s, payload %s-%s kg", out.DataPath, out.Site, kg(out.MinPayload), kg(out.MaxPayload)))
	r.Println("")

	if len(out.Sites) == 0 {
		r.Muted("No launches match the selection.")
		return
	}
	r.Table(summaryTable(out))
}

func summaryMarkdown(r *output.Renderer, out SummaryOutput) {
	r.Println(output.FormatHeader(1, "Launch outcomes"))
	r.Println("")
	r.Println(output.FormatKeyValue("Data", out.DataPath))
	r.Println(output.FormatKeyValue("Site", out.Site))
	r.Println(output.FormatKeyValue("Payload", fmt.Sprintf("%s-%s kg", kg(out.MinPayload), kg(out.MaxPayload))))
	r.Println("")

	if len(out.Sites) == 0 {
		r.Println("No launches match the selection.")
		return
	}
	r.Table(summaryTable(out))
}

func summaryTable(out SummaryOutput) output.Table {
	row := func(s dataset.SiteSummary) []any {
		return []any{s.Site, s.Launches, s.Successes, s.Failures, percent(s.SuccessRate), kg(s.MinPayload), kg(s.MaxPayload)}
	}

	t := output.Table{
		Header:         []string{"Launch Site", "Launches", "Successes", "Failures", "Success Rate", "Min Payload (kg)", "Max Payload (kg)"},
		NumericColumns: []int{1, 2, 3, 4, 5, 6},
	}
	for _, s := range out.Sites {
		t.Rows = append(t.Rows, row(s))
	}
	t.Footer = row(out.Total)
	return t
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func kg(v float64) string {
	return fmt.Sprintf("%.0f", v)
}
