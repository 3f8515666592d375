package commands

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/launchdash/internal/dataset"
)

// queryResult is a fully read result set.
type queryResult struct {
	Columns []string
	Rows    []map[string]any
}

func readResults(rows *sql.Rows) (*queryResult, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &queryResult{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		res.Rows = append(res.Rows, row)
	}
	return res, rows.Err()
}

func renderResults(w io.Writer, rows *sql.Rows, format string) error {
	res, err := readResults(rows)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return renderJSON(w, res)
	case "csv":
		return renderCSV(w, res)
	case "md", "markdown":
		return renderTable(w, res, true)
	case "table", "":
		return renderTable(w, res, false)
	default:
		return fmt.Errorf("unknown format %q (want table, json, csv or md)", format)
	}
}

func renderTable(w io.Writer, res *queryResult, markdown bool) error {
	if len(res.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(res.Columns))
	for i, col := range res.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, result := range res.Rows {
		row := make(table.Row, len(res.Columns))
		for i, col := range res.Columns {
			row[i] = formatValue(result[col])
		}
		t.AppendRow(row)
	}

	if markdown {
		t.RenderMarkdown()
		return nil
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(res.Rows))
	return nil
}

func renderJSON(w io.Writer, res *queryResult) error {
	rows := res.Rows
	if rows == nil {
		rows = []map[string]any{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func renderCSV(w io.Writer, res *queryResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(res.Columns); err != nil {
		return err
	}
	for _, result := range res.Rows {
		record := make([]string, len(res.Columns))
		for i, col := range res.Columns {
			record[i] = formatValue(result[col])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}

// tableNames lists the user tables and views of db.
func tableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'main'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func listTablesFromDB(ctx context.Context, w io.Writer, db *sql.DB, format string) error {
	rows, err := db.QueryContext(ctx, `
		SELECT table_name AS name, lower(table_type) AS type
		FROM information_schema.tables
		WHERE table_schema = 'main'
		ORDER BY table_name
	`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	return renderResults(w, rows, format)
}

// columnInfo describes one column of a table.
type columnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable string `json:"nullable"`
	Required bool   `json:"required"`
}

type schemaOutput struct {
	Name    string       `json:"name"`
	Type    string       `json:"type"`
	Columns []columnInfo `json:"columns"`
}

func readSchema(ctx context.Context, db *sql.DB, tableName string) (*schemaOutput, error) {
	var objType string
	err := db.QueryRowContext(ctx, `
		SELECT lower(table_type)
		FROM information_schema.tables
		WHERE table_schema = 'main' AND table_name = ?
	`, tableName).Scan(&objType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("table or view '%s' not found", tableName)
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = 'main' AND table_name = ?
		ORDER BY ordinal_position
	`, tableName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := &schemaOutput{Name: tableName, Type: strings.TrimPrefix(objType, "base "), Columns: []columnInfo{}}
	for rows.Next() {
		var col columnInfo
		if err := rows.Scan(&col.Name, &col.Type, &col.Nullable); err != nil {
			return nil, err
		}
		col.Required = tableName == dataset.TableName && slices.Contains(dataset.RequiredColumns, col.Name)
		out.Columns = append(out.Columns, col)
	}
	return out, rows.Err()
}

func showSchemaFromDB(ctx context.Context, w io.Writer, db *sql.DB, tableName, format string) error {
	schema, err := readSchema(ctx, db, tableName)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(schema)
	}

	title := "Table"
	if schema.Type == "view" {
		title = "View"
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", title, schema.Name)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Type", "Nullable", "Required"})
	for _, col := range schema.Columns {
		required := ""
		if col.Required {
			required = "yes"
		}
		t.AppendRow(table.Row{col.Name, col.Type, col.Nullable, required})
	}
	if format == "md" || format == "markdown" {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	return nil
}
