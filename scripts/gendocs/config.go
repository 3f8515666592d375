package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/launchdash/internal/cli/config"
)

// ConfigField describes one configuration key.
type ConfigField struct {
	Key         string
	Type        string
	Default     string
	Description string
}

// configFields lists every key of launchdash.yaml with its default.
func configFields() []ConfigField {
	def := config.Default()
	return []ConfigField{
		{Key: "data_path", Type: "string", Default: def.DataPath, Description: "Launch records CSV to load"},
		{Key: "output", Type: "string", Default: def.OutputFormat, Description: "CLI output format: auto, text, markdown, json, yaml"},
		{Key: "ui.host", Type: "string", Default: def.UI.Host, Description: "Dashboard listen host"},
		{Key: "ui.port", Type: "int", Default: strconv.Itoa(def.UI.Port), Description: "Dashboard listen port"},
		{Key: "ui.watch", Type: "bool", Default: strconv.FormatBool(def.UI.Watch), Description: "Notify open pages when the records file changes"},
		{Key: "ui.session_secret", Type: "string", Description: "Key signing the session cookie (a development default is used when unset)"},
		{Key: "log.level", Type: "string", Default: def.Log.Level, Description: "Log level: debug, info, warn, error"},
		{Key: "log.format", Type: "string", Default: def.Log.Format, Description: "Log format: text, json"},
	}
}

// generateConfigDocs writes configuration.md to outDir.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "launchdash configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("launchdash reads `launchdash.yaml` (or `.yml`) from the working directory, or the file given with `--config`. The file is optional; every key has a default.")

	w.Header(2, "Keys")
	headers := []string{"Key", "Type", "Default", "Flag", "Environment", "Description"}
	var rows [][]string
	for _, f := range configFields() {
		defVal := "-"
		if f.Default != "" {
			defVal = InlineCode(f.Default)
		}
		flagName := "-"
		if name := config.FlagForKey(f.Key); name != "" {
			flagName = InlineCode("--" + name)
		}
		rows = append(rows, []string{
			InlineCode(f.Key),
			f.Type,
			defVal,
			flagName,
			InlineCode(config.EnvVar(f.Key)),
			f.Description,
		})
	}
	w.Table(headers, rows)

	w.Header(2, "Precedence")
	w.BulletList([]string{
		"Command-line flags",
		"Environment variables (`LAUNCHDASH_` prefix, `__` separates nested keys)",
		"The configuration file",
		"Built-in defaults",
	})

	w.Header(2, "Example")
	w.CodeBlock("yaml", `# launchdash.yaml
data_path: data/spacex_launch_dash.csv
output: auto

ui:
  host: 0.0.0.0
  port: 8050
  watch: true
  session_secret: replace-with-a-long-random-string

log:
  level: info
  format: json`)

	filename := filepath.Join(outDir, "configuration.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}
