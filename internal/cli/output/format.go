package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// FormatHeader returns a markdown heading.
func FormatHeader(level int, s string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + s
}

// FormatKeyValue returns a markdown list item of the form "- **Key:** value".
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}

// FormatCodeBlock wraps s in a fenced code block.
func FormatCodeBlock(lang, s string) string {
	return "```" + lang + "\n" + strings.TrimRight(s, "\n") + "\n```"
}

// Table is a header plus rows of cells, rendered by the Renderer in the
// current mode. Columns listed in NumericColumns are right aligned.
type Table struct {
	Header         []string
	Rows           [][]any
	Footer         []any
	NumericColumns []int
}

// Table writes t as a box table in text mode and a pipe table otherwise.
func (r *Renderer) Table(t Table) {
	writeTable(r.out, t, r.EffectiveMode() != ModeText)
}

func writeTable(w io.Writer, t Table, markdown bool) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows {
		tw.AppendRow(table.Row(row))
	}
	if len(t.Footer) > 0 {
		tw.AppendFooter(table.Row(t.Footer))
	}

	configs := make([]table.ColumnConfig, 0, len(t.NumericColumns))
	for _, c := range t.NumericColumns {
		configs = append(configs, table.ColumnConfig{Number: c + 1, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)

	if markdown {
		tw.RenderMarkdown()
		return
	}
	tw.Render()
}
