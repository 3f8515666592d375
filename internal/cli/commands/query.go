package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	Input  string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Query the launch records with SQL",
		Long: `Run SQL against the launch records file.

The CSV is loaded into an in-memory DuckDB table named "launches" with the
columns of the file. Nothing is written back to disk.

When invoked without arguments on a terminal, enters interactive REPL mode.`,
		Example: `  # Launches per site
  launchdash query 'SELECT "Launch Site", count(*) FROM launches GROUP BY 1'

  # Show the table schema
  launchdash query schema

  # Output as JSON
  launchdash query "SELECT * FROM launches WHERE class = 1" --format json

  # Interactive mode
  launchdash query`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, csv, md")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	cmd.AddCommand(newQueryTablesCommand(opts))
	cmd.AddCommand(newQuerySchemaCommand(opts))

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	var sqlQuery string
	in := cmd.InOrStdin()

	switch {
	case len(args) > 0:
		sqlQuery = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	case !isTerminal(in):
		content, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	}

	return withLaunchDB(cmd, func(ctx context.Context, db *sql.DB, path string) error {
		if strings.TrimSpace(sqlQuery) == "" {
			if !isTerminal(in) {
				return fmt.Errorf("no SQL given")
			}
			return runQueryREPL(cmd, db, path, opts)
		}
		return executeAndRenderQuery(ctx, cmd.OutOrStdout(), db, sqlQuery, opts.Format)
	})
}

// withLaunchDB loads the configured launch records into a fresh DuckDB and
// hands it to fn.
func withLaunchDB(cmd *cobra.Command, fn func(ctx context.Context, db *sql.DB, path string) error) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	path := cmdCtx.Cfg.DataPath
	cmdCtx.Logger.Debug("opening launch records for query", "path", path)

	db, err := dataset.OpenDB(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return fn(ctx, db, path)
}

func executeAndRenderQuery(ctx context.Context, w io.Writer, db *sql.DB, query, format string) error {
	rows, err := db.QueryContext(ctx, strings.TrimSpace(query))
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return renderResults(w, rows, format)
}

func newQueryTablesCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the queryable tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLaunchDB(cmd, func(ctx context.Context, db *sql.DB, _ string) error {
				return listTablesFromDB(ctx, cmd.OutOrStdout(), db, opts.Format)
			})
		},
	}
}

func newQuerySchemaCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema [table]",
		Short: "Show the columns of a table (default: launches)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := dataset.TableName
			if len(args) == 1 {
				table = args[0]
			}
			return withLaunchDB(cmd, func(ctx context.Context, db *sql.DB, _ string) error {
				return showSchemaFromDB(ctx, cmd.OutOrStdout(), db, table, opts.Format)
			})
		},
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
