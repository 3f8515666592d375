package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

const launchesTable = "launches"

// selectRecordsSQL reads the required columns in file order. TRY_CAST turns
// unparseable cells into NULL so they can be reported per row. class is read
// as DOUBLE so fractional codes are rejected rather than rounded.
var selectRecordsSQL = fmt.Sprintf(`
	SELECT
		CAST(%s AS VARCHAR),
		TRY_CAST(%s AS DOUBLE),
		TRY_CAST(%s AS DOUBLE),
		CAST(%s AS VARCHAR)
	FROM %s
	ORDER BY rowid
`,
	quoteIdent(ColumnLaunchSite),
	quoteIdent(ColumnPayloadMass),
	quoteIdent(ColumnClass),
	quoteIdent(ColumnBoosterCategory),
	launchesTable,
)

// Load reads the launch records CSV at path into memory.
// Every failure is reported as a *DataLoadError.
func Load(ctx context.Context, path string) (*Dataset, error) {
	db, err := OpenDB(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	records, err := readRecords(ctx, db)
	if err != nil {
		return nil, &DataLoadError{Path: path, Reason: "invalid launch record", Err: err}
	}

	ds, err := New(records)
	if err != nil {
		return nil, &DataLoadError{Path: path, Reason: "empty file", Err: err}
	}
	ds.path = path
	return ds, nil
}

// OpenDB loads the CSV at path into the launches table of a private
// in-memory DuckDB and checks the required columns are present.
// The caller owns the returned handle.
func OpenDB(ctx context.Context, path string) (*sql.DB, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Reason: "cannot open file", Err: err}
	}
	if info.IsDir() {
		return nil, &DataLoadError{Path: path, Reason: "path is a directory"}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Reason: "cannot resolve path", Err: err}
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, &DataLoadError{Path: path, Reason: "cannot open duckdb", Err: err}
	}
	// Each pooled connection would get its own empty in-memory database.
	db.SetMaxOpenConns(1)

	fail := func(dlErr *DataLoadError) (*sql.DB, error) {
		_ = db.Close()
		return nil, dlErr
	}

	if err := loadCSV(ctx, db, absPath); err != nil {
		return fail(&DataLoadError{Path: path, Reason: "malformed CSV", Err: err})
	}

	columns, err := tableColumns(ctx, db)
	if err != nil {
		return fail(&DataLoadError{Path: path, Reason: "cannot read columns", Err: err})
	}
	if missing := missingColumns(columns); len(missing) > 0 {
		return fail(&DataLoadError{
			Path:   path,
			Reason: "missing required columns: " + strings.Join(missing, ", "),
		})
	}
	return db, nil
}

// TableName is the table OpenDB loads the records into.
const TableName = launchesTable

// loadCSV creates the launches table using DuckDB's schema inference.
func loadCSV(ctx context.Context, db *sql.DB, absPath string) error {
	query := fmt.Sprintf(
		"CREATE TABLE %s AS SELECT * FROM read_csv_auto('%s', header=true)",
		launchesTable,
		strings.ReplaceAll(absPath, "'", "''"),
	)
	_, err := db.ExecContext(ctx, query)
	return err
}

// tableColumns lists the launches table columns in file order.
func tableColumns(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		ORDER BY ordinal_position
	`, launchesTable)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

func missingColumns(columns []string) []string {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}

	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := present[required]; !ok {
			missing = append(missing, required)
		}
	}
	return missing
}

func readRecords(ctx context.Context, db *sql.DB) ([]LaunchRecord, error) {
	rows, err := db.QueryContext(ctx, selectRecordsSQL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []LaunchRecord
	// Line numbers count the header as line 1.
	line := 1
	for rows.Next() {
		line++

		var (
			site    sql.NullString
			payload sql.NullFloat64
			class   sql.NullFloat64
			booster sql.NullString
		)
		if err := rows.Scan(&site, &payload, &class, &booster); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		record, err := toRecord(site, payload, class, booster)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func toRecord(site sql.NullString, payload sql.NullFloat64, class sql.NullFloat64, booster sql.NullString) (LaunchRecord, error) {
	switch {
	case !site.Valid || strings.TrimSpace(site.String) == "":
		return LaunchRecord{}, fmt.Errorf("%q is empty", ColumnLaunchSite)
	case !payload.Valid:
		return LaunchRecord{}, fmt.Errorf("%q is not a number", ColumnPayloadMass)
	case math.IsNaN(payload.Float64) || math.IsInf(payload.Float64, 0):
		return LaunchRecord{}, fmt.Errorf("%q is not a finite number", ColumnPayloadMass)
	case payload.Float64 < 0:
		return LaunchRecord{}, fmt.Errorf("%q is negative: %g", ColumnPayloadMass, payload.Float64)
	case !class.Valid || (class.Float64 != ClassFailure && class.Float64 != ClassSuccess):
		return LaunchRecord{}, fmt.Errorf("%q must be 0 or 1", ColumnClass)
	case !booster.Valid:
		return LaunchRecord{}, fmt.Errorf("%q is empty", ColumnBoosterCategory)
	}

	return LaunchRecord{
		Site:            site.String,
		PayloadMass:     payload.Float64,
		Class:           int(class.Float64),
		BoosterCategory: booster.String,
	}, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
