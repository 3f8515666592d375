package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/launchdash/internal/cli/output"
)

// MarkdownWriter accumulates a markdown page.
type MarkdownWriter struct {
	b strings.Builder
}

// NewMarkdownWriter returns an empty page.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Frontmatter writes a YAML front matter block.
func (w *MarkdownWriter) Frontmatter(title, description string) {
	fmt.Fprintf(&w.b, "---\ntitle: %q\ndescription: %q\n---\n\n", title, description)
}

// GeneratedMarker notes that the page must not be edited by hand.
func (w *MarkdownWriter) GeneratedMarker() {
	w.b.WriteString("<!-- Generated by scripts/gendocs. DO NOT EDIT. -->\n\n")
}

func (w *MarkdownWriter) Header(level int, text string) {
	w.b.WriteString(output.FormatHeader(level, text) + "\n\n")
}

func (w *MarkdownWriter) Paragraph(text string) {
	w.b.WriteString(strings.TrimSpace(text) + "\n\n")
}

func (w *MarkdownWriter) CodeBlock(lang, code string) {
	w.b.WriteString(output.FormatCodeBlock(lang, code) + "\n\n")
}

func (w *MarkdownWriter) BulletList(items []string) {
	for _, item := range items {
		w.b.WriteString("- " + item + "\n")
	}
	w.b.WriteString("\n")
}

// Table writes a pipe table. Nothing is written for zero rows.
func (w *MarkdownWriter) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	t := table.NewWriter()
	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	t.AppendHeader(header)
	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, cell := range r {
			row[i] = cell
		}
		t.AppendRow(row)
	}
	w.b.WriteString(t.RenderMarkdown() + "\n\n")
}

// Bytes returns the page.
func (w *MarkdownWriter) Bytes() []byte {
	return []byte(w.b.String())
}

// InlineCode wraps s in backticks.
func InlineCode(s string) string {
	return "`" + s + "`"
}

// cleanDescription folds s onto a single line for a table cell.
func cleanDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
