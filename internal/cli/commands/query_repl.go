package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/spf13/cobra"
)

const (
	replPrompt     = "launchdash> "
	replContPrompt = "      ...> "
)

func runQueryREPL(cmd *cobra.Command, db *sql.DB, dataPath string, opts *QueryOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyPath(),
		AutoComplete:    newQueryCompleter(ctx, db),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(out, "launchdash query REPL (data: %s)\n", dataPath)
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if buf.Len() == 0 && strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(ctx, cmd, db, line, opts.Format); quit {
				break
			}
			continue
		}

		// Statements run once terminated with a semicolon.
		buf.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buf.WriteString(" ")
			rl.SetPrompt(replContPrompt)
			continue
		}
		rl.SetPrompt(replPrompt)

		query := strings.TrimSuffix(buf.String(), ";")
		buf.Reset()

		if err := executeAndRenderQuery(ctx, out, db, query, opts.Format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(out)
	}

	return nil
}

// historyPath keeps REPL history in the user cache directory.
func historyPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	dir = filepath.Join(dir, "launchdash")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "query_history")
}

// handleDotCommand runs a REPL dot command and reports whether the REPL
// should exit.
func handleDotCommand(ctx context.Context, cmd *cobra.Command, db *sql.DB, line, format string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(out)

	case ".tables":
		if err := listTablesFromDB(ctx, out, db, format); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}

	case ".schema":
		name := dataset.TableName
		if len(parts) > 1 {
			name = parts[1]
		}
		if err := showSchemaFromDB(ctx, out, db, name, format); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}

	case ".clear":
		_, _ = fmt.Fprint(out, "\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .tables          List the queryable tables
  .schema [name]   Show the columns of a table (default: launches)
  .clear           Clear the screen
  .quit / .exit    Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Quote column names with spaces: "Launch Site"
  - Tab completion works for tables and columns
`
	_, _ = fmt.Fprintln(w, help)
}

// newQueryCompleter completes table names, quoted column names and dot
// commands.
func newQueryCompleter(ctx context.Context, db *sql.DB) *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface

	// Completion is best effort; lookup errors leave the list short.
	tables, _ := tableNames(ctx, db)
	for _, name := range tables {
		items = append(items, readline.PcItem(name))
		if schema, err := readSchema(ctx, db, name); err == nil {
			for _, col := range schema.Columns {
				items = append(items, readline.PcItem(`"`+col.Name+`"`))
			}
		}
	}

	items = append(items,
		readline.PcItem("SELECT"),
		readline.PcItem(".help"),
		readline.PcItem(".tables"),
		readline.PcItem(".schema", readline.PcItemDynamic(func(string) []string { return tables })),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)

	return readline.NewPrefixCompleter(items...)
}
