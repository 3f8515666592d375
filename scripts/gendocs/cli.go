package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/launchdash/internal/cli"
	"github.com/leapstack-labs/launchdash/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// generateCLIDocs writes index.md plus one page per top-level command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()

	if err := writePage(outDir, "index.md", cliIndex(root)); err != nil {
		return err
	}
	for _, cmd := range visibleCommands(root) {
		if err := writePage(outDir, cmd.Name()+".md", commandPage(cmd)); err != nil {
			return err
		}
	}
	return nil
}

func writePage(outDir, name string, w *MarkdownWriter) error {
	if err := os.WriteFile(filepath.Join(outDir, name), w.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	log.Printf("  Generated %s", name)
	return nil
}

// visibleCommands lists the subcommands of cmd a user is meant to call.
func visibleCommands(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, sub := range cmd.Commands() {
		if sub.Hidden || !sub.IsAvailableCommand() || sub.Name() == "help" {
			continue
		}
		out = append(out, sub)
	}
	return out
}

func cliIndex(root *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line reference for launchdash")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("launchdash serves the SpaceX launch records dashboard and answers the same questions from the terminal: per-site summaries, chart exports and ad-hoc SQL over the records file.")

	w.Header(2, "Starting the dashboard")
	w.Paragraph("Run without a command to serve the dashboard on the configured address. The records file is loaded once at startup; a malformed file stops the server before it listens.")
	w.CodeBlock("bash", `launchdash
launchdash serve --data spacex_launch_dash.csv --port 8080 --watch`)

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range visibleCommands(root) {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("Options marked with a config key override that key for a single run.")
	flagTable(w, root.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph("Each key of `launchdash.yaml` can be set from the environment. Nested keys use a double underscore.")
	var envRows [][]string
	for _, f := range configFields() {
		envRows = append(envRows, []string{InlineCode(config.EnvVar(f.Key)), InlineCode(f.Key), f.Description})
	}
	w.Table([]string{"Variable", "Key", "Description"}, envRows)
	w.Paragraph("Flags win over the environment, which wins over the config file.")

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success, including `doctor` runs with warnings only"},
		{InlineCode("1"), "Invalid records file or configuration, failed query or export, or a `doctor` check with error status"},
	})

	return w
}

func commandPage(cmd *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	w.Paragraph(firstNonEmpty(cmd.Long, cmd.Short))

	w.Header(2, "Usage")
	w.CodeBlock("bash", usageLine(cmd))

	if len(cmd.Aliases) > 0 {
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = InlineCode(a)
		}
		w.Header(2, "Aliases")
		w.BulletList(aliases)
	}

	subs := visibleCommands(cmd)
	if len(subs) > 0 {
		w.Header(2, "Subcommands")
		var rows [][]string
		for _, sub := range subs {
			rows = append(rows, []string{InlineCode(sub.Name()), cleanDescription(sub.Short)})
		}
		w.Table([]string{"Subcommand", "Description"}, rows)

		for _, sub := range subs {
			w.Header(3, cmd.Name()+" "+sub.Name())
			w.CodeBlock("bash", "launchdash "+cmd.Name()+" "+sub.Use)
		}
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		flagTable(w, cmd.LocalFlags())
	}
	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		flagTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	return w
}

func usageLine(cmd *cobra.Command) string {
	if cmd.HasAvailableSubCommands() {
		return fmt.Sprintf("launchdash %s <subcommand> [options]", cmd.Name())
	}
	line := cmd.UseLine()
	if !strings.HasPrefix(line, "launchdash") {
		line = "launchdash " + line
	}
	return line
}

// flagTable lists flags with the config key, if any, each one overrides.
func flagTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		option := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			option += ", " + InlineCode("-"+f.Shorthand)
		}

		def := ""
		if f.DefValue != "" && f.Value.Type() != "bool" {
			def = InlineCode(f.DefValue)
		}

		key := ""
		if k := config.KeyForFlag(f.Name); k != "" {
			key = InlineCode(k)
		}

		rows = append(rows, []string{option, def, key, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Default", "Config key", "Description"}, rows)
}

// cleanExample strips the indentation shared by every non-blank line.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimSpace(line)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
